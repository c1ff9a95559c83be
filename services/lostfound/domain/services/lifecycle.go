// Package services contains stateless domain services for the lost & found
// bounded context. The lifecycle service owns the edit/delete rules that
// span the item aggregate and its status machine.
package services

import (
	"fmt"
	"time"

	"github.com/campusfound/campusfound/services/lostfound/domain"
	"github.com/campusfound/campusfound/services/lostfound/domain/models"
)

// ItemEdit carries the optional guard-editable item fields. A nil field is
// left untouched; a set field is re-validated before it is applied.
type ItemEdit struct {
	Name        *models.ItemName
	Description *string
	Category    *models.Category
	Location    *models.Location
	FoundDate   *time.Time
	Image       *string
}

// StudentEdit carries replacement student contact details for a claimed
// item. The original ClaimedDate always survives the edit.
type StudentEdit struct {
	StudentName   string
	RollNumber    string
	StudyYear     string
	ContactNumber string
}

// EditAvailable applies edit to an available item. Editing any other status
// through this path fails with ErrInvalidTransition — claimed items go
// through EditClaimed, delivered items are immutable.
func EditAvailable(item *models.Item, edit ItemEdit, now time.Time) error {
	if item.Status != models.StatusAvailable {
		return fmt.Errorf("%w: cannot edit a %s item here", domain.ErrInvalidTransition, item.Status)
	}
	return applyItemEdit(item, edit, now)
}

// EditClaimed applies item-field and/or student-field edits to a claimed
// item. The claim's ClaimedDate is never altered.
func EditClaimed(item *models.Item, edit ItemEdit, student *StudentEdit, now time.Time) error {
	if item.Status != models.StatusClaimed {
		return fmt.Errorf("%w: cannot edit claim details of a %s item", domain.ErrInvalidTransition, item.Status)
	}
	if err := applyItemEdit(item, edit, now); err != nil {
		return err
	}
	if student != nil {
		updated, err := item.ClaimedBy.WithContactDetails(
			student.StudentName,
			student.RollNumber,
			student.StudyYear,
			student.ContactNumber,
		)
		if err != nil {
			return err
		}
		item.ClaimedBy = &updated
	}
	return nil
}

// EnsureDeletable reports whether the item may be removed. Delivered items
// are terminal records and cannot be deleted.
func EnsureDeletable(item *models.Item) error {
	if item.Status.Terminal() {
		return fmt.Errorf("%w: cannot delete a delivered item", domain.ErrInvalidTransition)
	}
	return nil
}

func applyItemEdit(item *models.Item, edit ItemEdit, now time.Time) error {
	if edit.Description != nil && len(*edit.Description) > 500 {
		return fmt.Errorf("%w: description must not exceed 500 characters", domain.ErrValidation)
	}
	if edit.Image != nil && *edit.Image == "" {
		return domain.ErrMissingImage
	}
	if edit.FoundDate != nil {
		normalized := models.NormalizeDate(*edit.FoundDate)
		if models.DateAfterToday(normalized, now) {
			return fmt.Errorf("%w: foundDate cannot be in the future", domain.ErrValidation)
		}
		item.FoundDate = normalized
	}

	if edit.Name != nil {
		item.Name = *edit.Name
	}
	if edit.Description != nil {
		item.Description = *edit.Description
	}
	if edit.Category != nil {
		item.Category = *edit.Category
	}
	if edit.Location != nil {
		item.Location = *edit.Location
	}
	if edit.Image != nil {
		item.Image = *edit.Image
	}
	return nil
}
