package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusfound/campusfound/services/lostfound/domain"
)

const maxDescriptionLength = 500

// Item is the core aggregate: a found object tracked from discovery to
// return. Structural invariants enforced here and by the mutation methods:
//
//   - ClaimedBy is nil iff Status == StatusAvailable
//   - FoundDate is a noon-UTC calendar date, never in the future
//   - Status only moves forward (available → claimed → delivered)
//   - a delivered Item accepts no further mutation
type Item struct {
	ID          uuid.UUID
	Name        ItemName
	Description string
	Category    Category
	Location    Location
	FoundDate   time.Time
	Status      Status
	Image       string
	ClaimedBy   *Claim
	AddedBy     string
	CreatedAt   time.Time
}

// NewItemParams carries the guard-supplied fields for item creation.
// FoundDate must already be normalized (ParseFoundDate / NormalizeDate).
type NewItemParams struct {
	Name        ItemName
	Description string
	Category    Category
	Location    Location
	FoundDate   time.Time
	Image       string
	AddedBy     string
}

// NewItem constructs a valid available Item with generated ID and creation
// timestamp. now supplies the server clock for the future-date check.
func NewItem(p NewItemParams, now time.Time) (*Item, error) {
	if p.Image == "" {
		return nil, domain.ErrMissingImage
	}
	if len(p.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must not exceed %d characters", domain.ErrValidation, maxDescriptionLength)
	}
	if p.FoundDate.IsZero() {
		return nil, fmt.Errorf("%w: foundDate is required", domain.ErrValidation)
	}
	if DateAfterToday(p.FoundDate, now) {
		return nil, fmt.Errorf("%w: foundDate cannot be in the future", domain.ErrValidation)
	}

	return &Item{
		ID:          uuid.New(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Location:    p.Location,
		FoundDate:   NormalizeDate(p.FoundDate),
		Status:      StatusAvailable,
		Image:       p.Image,
		AddedBy:     p.AddedBy,
		CreatedAt:   now.UTC(),
	}, nil
}

// Claim transitions the item from available to claimed and attaches the
// student sub-record. Fails with ErrInvalidTransition for any other
// starting status.
func (i *Item) Claim(c Claim) error {
	if !i.Status.CanTransitionTo(StatusClaimed) {
		return fmt.Errorf("%w: cannot claim a %s item", domain.ErrInvalidTransition, i.Status)
	}
	i.Status = StatusClaimed
	i.ClaimedBy = &c
	return nil
}

// Deliver transitions the item from claimed to delivered. The claim
// sub-record stays attached; the item becomes an immutable terminal record.
func (i *Item) Deliver() error {
	if !i.Status.CanTransitionTo(StatusDelivered) {
		return fmt.Errorf("%w: cannot deliver a %s item", domain.ErrInvalidTransition, i.Status)
	}
	i.Status = StatusDelivered
	return nil
}

// Available reports whether the item can still be claimed.
func (i *Item) Available() bool {
	return i.Status == StatusAvailable
}
