package domain

import "errors"

// Sentinel errors for the lost & found domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrValidation indicates a field value violates domain constraints.
	// Wrapping errors carry the field name and reason.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates a lifecycle precondition was violated:
	// claiming a non-available item, delivering a non-claimed item, or
	// mutating/deleting a delivered item.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrClaimConflict indicates the conditional claim update lost a race —
	// the item's status changed between the pre-check and the write.
	ErrClaimConflict = errors.New("item was claimed concurrently")

	// ErrInvalidDateFormat indicates a found date that matches no accepted
	// textual form and cannot be parsed as a timestamp.
	ErrInvalidDateFormat = errors.New("unrecognized date format")

	// ErrMissingImage indicates an item create without a photo.
	ErrMissingImage = errors.New("item image is required")
)
