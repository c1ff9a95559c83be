package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusfound/campusfound/services/lostfound/domain/models"
)

// QueryOpts contains filter and pagination parameters for list queries.
type QueryOpts struct {
	Status *models.Status // nil = all statuses
	Limit  int            // Maximum number of records to return; 0 = no limit
	Offset int            // Number of records to skip
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// The three status-changing writes (ClaimAvailable, MarkDelivered, Delete)
// are conditional single-statement updates: each is applied only when the
// row still holds the expected prior status, so racing callers cannot
// overwrite each other — the loser observes ErrClaimConflict or
// ErrInvalidTransition instead.
type ItemRepository interface {
	Save(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// Find retrieves a filtered, paginated list of items (created_at DESC)
	// and the total count ignoring pagination.
	Find(ctx context.Context, opts QueryOpts) ([]*models.Item, int, error)

	// Search runs a case-insensitive substring match across name,
	// description, category, and location. Each call is a fresh snapshot.
	Search(ctx context.Context, term string) ([]*models.Item, error)

	// Recent returns the limit most recently created items, created_at
	// DESC, ties broken by insertion order.
	Recent(ctx context.Context, limit int) ([]*models.Item, error)

	// Update persists field changes to an existing non-delivered item.
	Update(ctx context.Context, item *models.Item) error

	// ClaimAvailable atomically sets status=claimed and the claim
	// sub-record iff the row is still available. Returns the post-update
	// item, ErrItemNotFound for a missing id, or ErrClaimConflict when the
	// row exists but was no longer available at write time.
	ClaimAvailable(ctx context.Context, id uuid.UUID, claim models.Claim) (*models.Item, error)

	// MarkDelivered atomically sets status=delivered iff the row is still
	// claimed. Returns ErrInvalidTransition when the row exists in any
	// other status.
	MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// Delete removes a non-delivered item. Returns ErrInvalidTransition
	// for delivered rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns per-status item counts for the dashboard.
	CountByStatus(ctx context.Context) (map[models.Status]int, error)
}
