// Package postgres implements the lost & found repository against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/campusfound/campusfound/pkg/database"
	"github.com/campusfound/campusfound/pkg/events"
	lfdomain "github.com/campusfound/campusfound/services/lostfound/domain"
	domainevents "github.com/campusfound/campusfound/services/lostfound/domain/events"
	"github.com/campusfound/campusfound/services/lostfound/domain/models"
	"github.com/campusfound/campusfound/services/lostfound/domain/repositories"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const itemColumns = "id, name, description, category, location, found_date, status, image, claimed_by, added_by, created_at"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Status-changing writes run as conditional single-statement updates and
// publish their domain event via the bus's transactional publisher, so an
// event exists iff the row change committed.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. A nil bus disables event publishing (tests).
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Save persists a new Item and publishes ItemCreatedEvent within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	claimJSON, err := marshalClaim(item.ClaimedBy)
	if err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.Insert("items").
			Columns("id", "name", "description", "category", "location",
				"found_date", "status", "image", "claimed_by", "added_by", "created_at").
			Values(item.ID, item.Name.String(), item.Description, item.Category.String(),
				item.Location.String(), item.FoundDate, item.Status.String(), item.Image,
				claimJSON, item.AddedBy, item.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus == nil {
			return nil
		}
		return r.publishTx(tx, domainevents.TopicItemCreated, domainevents.ItemCreatedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     item.ID,
			Name:       item.Name.String(),
			Category:   item.Category.String(),
			Location:   item.Location.String(),
			Image:      item.Image,
			AddedBy:    item.AddedBy,
			OccurredAt: item.CreatedAt,
		})
	})
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query, args, err := psql.Select(itemColumns).
		From("items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	item, err := scanItem(r.db.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lfdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// Find retrieves a filtered, paginated list of items plus the total count.
// Results are ordered newest first, ties broken by insertion order.
func (r *ItemRepository) Find(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	builder := psql.Select(itemColumns).
		From("items").
		OrderBy("created_at DESC", "seq DESC")
	countBuilder := psql.Select("count(*)").From("items")

	if opts.Status != nil {
		builder = builder.Where(sq.Eq{"status": opts.Status.String()})
		countBuilder = countBuilder.Where(sq.Eq{"status": opts.Status.String()})
	}
	if opts.Limit > 0 {
		builder = builder.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		builder = builder.Offset(uint64(opts.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build select: %w", err)
	}
	items, err := r.queryItems(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.db.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	return items, total, nil
}

// Search runs a case-insensitive substring match across name, description,
// category, and location.
func (r *ItemRepository) Search(ctx context.Context, term string) ([]*models.Item, error) {
	pattern := "%" + escapeLike(term) + "%"
	query, args, err := psql.Select(itemColumns).
		From("items").
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"category": pattern},
			sq.ILike{"location": pattern},
		}).
		OrderBy("created_at DESC", "seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	return r.queryItems(ctx, query, args...)
}

// Recent returns the limit most recently created items.
func (r *ItemRepository) Recent(ctx context.Context, limit int) ([]*models.Item, error) {
	query, args, err := psql.Select(itemColumns).
		From("items").
		OrderBy("created_at DESC", "seq DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent: %w", err)
	}
	return r.queryItems(ctx, query, args...)
}

// Update persists field changes to an existing item. The write is conditioned
// on the status the edit was validated against, so an edit racing a concurrent
// transition loses cleanly instead of writing stale claim state.
// The status column is deliberately not part of the SET list — status moves
// only through ClaimAvailable and MarkDelivered.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	claimJSON, err := marshalClaim(item.ClaimedBy)
	if err != nil {
		return err
	}

	query, args, err := psql.Update("items").
		Set("name", item.Name.String()).
		Set("description", item.Description).
		Set("category", item.Category.String()).
		Set("location", item.Location.String()).
		Set("found_date", item.FoundDate).
		Set("image", item.Image).
		Set("claimed_by", claimJSON).
		Where(sq.Eq{"id": item.ID, "status": item.Status.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.db.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.staleUpdate(ctx, item.ID)
	}
	return nil
}

// staleUpdate resolves a zero-rows conditional update into the precise domain
// error: the row never existed, is a delivered terminal record, or was claimed
// after the edit was read.
func (r *ItemRepository) staleUpdate(ctx context.Context, id uuid.UUID) error {
	var status string
	err := r.db.DB().QueryRowContext(ctx, "SELECT status FROM items WHERE id = $1", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return lfdomain.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("check item status: %w", err)
	}
	if status == models.StatusDelivered.String() {
		return fmt.Errorf("%w: item is delivered", lfdomain.ErrInvalidTransition)
	}
	return fmt.Errorf("%w: item is now %s", lfdomain.ErrClaimConflict, status)
}

// ClaimAvailable atomically claims an item iff it is still available, and
// publishes ItemClaimedEvent in the same transaction. The WHERE clause is the
// compare-and-swap: a row that was claimed between the caller's pre-check and
// this statement matches zero rows and the caller observes ErrClaimConflict.
func (r *ItemRepository) ClaimAvailable(ctx context.Context, id uuid.UUID, claim models.Claim) (*models.Item, error) {
	claimJSON, err := marshalClaim(&claim)
	if err != nil {
		return nil, err
	}

	var updated *models.Item
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.Update("items").
			Set("status", models.StatusClaimed.String()).
			Set("claimed_by", claimJSON).
			Where(sq.Eq{"id": id, "status": models.StatusAvailable.String()}).
			Suffix("RETURNING " + itemColumns).
			ToSql()
		if err != nil {
			return fmt.Errorf("build claim update: %w", err)
		}

		item, err := scanItem(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if exists, exErr := r.existsTx(ctx, tx, id); exErr != nil {
					return exErr
				} else if !exists {
					return lfdomain.ErrItemNotFound
				}
				return lfdomain.ErrClaimConflict
			}
			return fmt.Errorf("claim item: %w", err)
		}
		updated = item

		if r.bus == nil {
			return nil
		}
		return r.publishTx(tx, domainevents.TopicItemClaimed, domainevents.ItemClaimedEvent{
			EventID:     uuid.New(),
			Version:     1,
			ItemID:      item.ID,
			Name:        item.Name.String(),
			StudentName: claim.StudentName,
			RollNumber:  claim.RollNumber,
			OccurredAt:  claim.ClaimedDate,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkDelivered atomically delivers an item iff it is still claimed, and
// publishes ItemDeliveredEvent in the same transaction.
func (r *ItemRepository) MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var updated *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.Update("items").
			Set("status", models.StatusDelivered.String()).
			Where(sq.Eq{"id": id, "status": models.StatusClaimed.String()}).
			Suffix("RETURNING " + itemColumns).
			ToSql()
		if err != nil {
			return fmt.Errorf("build deliver update: %w", err)
		}

		item, err := scanItem(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if exists, exErr := r.existsTx(ctx, tx, id); exErr != nil {
					return exErr
				} else if !exists {
					return lfdomain.ErrItemNotFound
				}
				return fmt.Errorf("%w: only claimed items can be delivered", lfdomain.ErrInvalidTransition)
			}
			return fmt.Errorf("deliver item: %w", err)
		}
		updated = item

		if r.bus == nil {
			return nil
		}
		return r.publishTx(tx, domainevents.TopicItemDelivered, domainevents.ItemDeliveredEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     item.ID,
			Name:       item.Name.String(),
			OccurredAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a non-delivered item. The status condition makes the
// terminal-record rule hold even against a concurrent delivery.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("items").
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"status": models.StatusDelivered.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.db.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.missingOrTerminal(ctx, id)
	}
	return nil
}

// CountByStatus returns per-status item counts, zero-filled for empty buckets.
func (r *ItemRepository) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	query, args, err := psql.Select("status", "count(*)").
		From("items").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build counts: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[models.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// missingOrTerminal resolves a zero-rows-affected write into the precise
// domain error: the row either never existed or is a delivered terminal record.
func (r *ItemRepository) missingOrTerminal(ctx context.Context, id uuid.UUID) error {
	var status string
	err := r.db.DB().QueryRowContext(ctx, "SELECT status FROM items WHERE id = $1", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return lfdomain.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("check item status: %w", err)
	}
	return fmt.Errorf("%w: item is %s", lfdomain.ErrInvalidTransition, status)
}

func (r *ItemRepository) existsTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) (bool, error) {
	var exists bool
	if err := tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

func (r *ItemRepository) publishTx(tx *sql.Tx, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", "1")

	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// claimDoc is the JSONB shape of the embedded claim sub-record.
type claimDoc struct {
	StudentName   string    `json:"studentName"`
	RollNumber    string    `json:"rollNumber"`
	StudyYear     string    `json:"studyYear"`
	ContactNumber string    `json:"contactNumber"`
	ClaimedDate   time.Time `json:"claimedDate"`
}

func marshalClaim(c *models.Claim) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal(claimDoc{
		StudentName:   c.StudentName,
		RollNumber:    c.RollNumber,
		StudyYear:     c.StudyYear.String(),
		ContactNumber: c.ContactNumber,
		ClaimedDate:   c.ClaimedDate,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal claim: %w", err)
	}
	return b, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item      models.Item
		name      string
		category  string
		location  string
		status    string
		claimJSON []byte
	)
	if err := row.Scan(
		&item.ID, &name, &item.Description, &category, &location,
		&item.FoundDate, &status, &item.Image, &claimJSON, &item.AddedBy, &item.CreatedAt,
	); err != nil {
		return nil, err
	}

	item.Name = models.ItemName(name)
	item.Category = models.Category(category)
	item.Location = models.Location(location)
	item.Status = models.Status(status)

	if len(claimJSON) > 0 {
		var doc claimDoc
		if err := json.Unmarshal(claimJSON, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal claim: %w", err)
		}
		item.ClaimedBy = &models.Claim{
			StudentName:   doc.StudentName,
			RollNumber:    doc.RollNumber,
			StudyYear:     models.StudyYear(doc.StudyYear),
			ContactNumber: doc.ContactNumber,
			ClaimedDate:   doc.ClaimedDate,
		}
	}
	return &item, nil
}

// escapeLike escapes LIKE wildcards in a user-supplied search term.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
