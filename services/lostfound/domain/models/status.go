package models

import (
	"fmt"

	"github.com/campusfound/campusfound/services/lostfound/domain"
)

// Status is the lifecycle state of a found item. Transitions move forward
// only: available → claimed → delivered. Delivered is terminal.
type Status string

const (
	StatusAvailable Status = "available"
	StatusClaimed   Status = "claimed"
	StatusDelivered Status = "delivered"
)

// Statuses lists all lifecycle states in dashboard bucket order.
var Statuses = []Status{StatusAvailable, StatusClaimed, StatusDelivered}

// ParseStatus converts s into a Status or fails for unknown values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusClaimed, StatusDelivered:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", domain.ErrValidation, s)
}

// CanTransitionTo reports whether moving from s to next is a legal
// forward transition.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusAvailable:
		return next == StatusClaimed
	case StatusClaimed:
		return next == StatusDelivered
	default:
		return false
	}
}

// Terminal reports whether s permits no further transitions or mutations.
func (s Status) Terminal() bool {
	return s == StatusDelivered
}

// String returns the wire value of the status.
func (s Status) String() string {
	return string(s)
}
