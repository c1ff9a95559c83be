package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/campusfound/campusfound/pkg/cache"
	"github.com/campusfound/campusfound/pkg/logger"
	"github.com/campusfound/campusfound/pkg/storage"
	lostfound "github.com/campusfound/campusfound/services/lostfound/domain"
	"github.com/campusfound/campusfound/services/lostfound/domain/models"
	"github.com/campusfound/campusfound/services/lostfound/domain/repositories"
	domainsvcs "github.com/campusfound/campusfound/services/lostfound/domain/services"
)

// ItemService orchestrates the item lifecycle from registration to delivery.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads of available items are served from Redis cache when possible.
type ItemService struct {
	repo   repositories.ItemRepository
	cache  *pkgcache.ItemCache
	images storage.ImageStore
	log    logger.Logger
}

// NewItemService returns an ItemService wired with the given repository,
// cache, image store, and logger.
func NewItemService(repo repositories.ItemRepository, itemCache *pkgcache.ItemCache, images storage.ImageStore, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, cache: itemCache, images: images, log: log}
}

// CreateItemInput carries the guard-supplied fields for item registration.
// Enum and date fields arrive as raw strings and are parsed here.
type CreateItemInput struct {
	Name        string
	Description string
	Category    string
	Location    string
	FoundDate   string
	AddedBy     string

	ImageFilename string
	ImageData     io.Reader
}

// UpdateItemInput carries optional replacement fields for an item edit.
// Nil fields are left untouched. A non-nil ImageData replaces the photo.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Category    *string
	Location    *string
	FoundDate   *string

	ImageFilename string
	ImageData     io.Reader
}

// ClaimInput carries the student details submitted with a claim.
type ClaimInput struct {
	StudentName   string
	RollNumber    string
	StudyYear     string
	ContactNumber string
}

// Statistics is the per-status breakdown for the dashboard.
type Statistics struct {
	Total     int
	Available int
	Claimed   int
	Delivered int
}

// Create stores the photo, validates the fields, and persists a new
// available item. The repository publishes ItemCreatedEvent in the same
// transaction. The stored photo is removed again if persistence fails.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	if in.ImageData == nil {
		return nil, lostfound.ErrMissingImage
	}

	name, err := models.NewItemName(in.Name)
	if err != nil {
		return nil, err
	}
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	location, err := models.ParseLocation(in.Location)
	if err != nil {
		return nil, err
	}
	foundDate, err := models.ParseFoundDate(in.FoundDate)
	if err != nil {
		return nil, err
	}

	imageRef, err := s.images.Save(ctx, in.ImageFilename, in.ImageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lostfound.ErrValidation, err)
	}

	item, err := models.NewItem(models.NewItemParams{
		Name:        name,
		Description: in.Description,
		Category:    category,
		Location:    location,
		FoundDate:   foundDate,
		Image:       imageRef,
		AddedBy:     in.AddedBy,
	}, time.Now())
	if err != nil {
		_ = s.images.Remove(ctx, imageRef)
		return nil, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		_ = s.images.Remove(ctx, imageRef)
		return nil, fmt.Errorf("save item: %w", err)
	}

	return item, nil
}

// GetByID retrieves an item using a read-through cache pattern:
//  1. Check Redis cache first. Only available items are served from cache;
//     claim details live in Postgres only.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache when the item is still available.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			if item, ok := itemFromCache(cached); ok {
				return item, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			// Cache error; fall through to Postgres.
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	s.warmCache(item)
	return item, nil
}

// List returns a filtered, paginated slice of items plus total count.
func (s *ItemService) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	items, total, err := s.repo.Find(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}

// Search runs a case-insensitive substring match across name, description,
// category, and location. A blank term returns the unfiltered list.
func (s *ItemService) Search(ctx context.Context, term string) ([]*models.Item, error) {
	if term == "" {
		items, _, err := s.repo.Find(ctx, repositories.QueryOpts{})
		return items, err
	}
	items, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// Recent returns the limit most recently registered items, newest first.
func (s *ItemService) Recent(ctx context.Context, limit int) ([]*models.Item, error) {
	items, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent items: %w", err)
	}
	return items, nil
}

// GetStatistics returns item counts per status plus the overall total.
func (s *ItemService) GetStatistics(ctx context.Context) (*Statistics, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	stats := &Statistics{
		Available: counts[models.StatusAvailable],
		Claimed:   counts[models.StatusClaimed],
		Delivered: counts[models.StatusDelivered],
	}
	stats.Total = stats.Available + stats.Claimed + stats.Delivered
	return stats, nil
}

// UpdateAvailable applies a guard edit to an item that is still available.
// A replacement photo, when provided, is stored first and the old one
// removed only after the edit persists.
func (s *ItemService) UpdateAvailable(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	edit, oldImage, err := s.buildEdit(ctx, item, in)
	if err != nil {
		return nil, err
	}

	if err := domainsvcs.EditAvailable(item, edit, time.Now()); err != nil {
		s.discardNewImage(ctx, edit)
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		s.discardNewImage(ctx, edit)
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.finishImageSwap(ctx, edit, oldImage)
	s.invalidate(ctx, id)
	return item, nil
}

// UpdateClaimed applies item-field and/or student-contact edits to a claimed
// item. The claim's original date always survives the edit.
func (s *ItemService) UpdateClaimed(ctx context.Context, id uuid.UUID, in UpdateItemInput, student *domainsvcs.StudentEdit) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	edit, oldImage, err := s.buildEdit(ctx, item, in)
	if err != nil {
		return nil, err
	}

	if err := domainsvcs.EditClaimed(item, edit, student, time.Now()); err != nil {
		s.discardNewImage(ctx, edit)
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		s.discardNewImage(ctx, edit)
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.finishImageSwap(ctx, edit, oldImage)
	s.invalidate(ctx, id)
	return item, nil
}

// Claim attaches student details to an available item and moves it to
// claimed. A claim against a known claimed or delivered item fails with
// ErrInvalidTransition up front; the write itself is a single conditional
// update in the repository, so a racing second claim loses with
// ErrClaimConflict.
func (s *ItemService) Claim(ctx context.Context, id uuid.UUID, in ClaimInput) (*models.Item, error) {
	claim, err := models.NewClaim(in.StudentName, in.RollNumber, in.StudyYear, in.ContactNumber, time.Now())
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := item.Claim(claim); err != nil {
		return nil, err
	}

	item, err = s.repo.ClaimAvailable(ctx, id, claim)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return item, nil
}

// Deliver moves a claimed item to delivered, its terminal status.
func (s *ItemService) Deliver(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := item.Deliver(); err != nil {
		return nil, err
	}

	item, err = s.repo.MarkDelivered(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return item, nil
}

// Delete removes a non-delivered item along with its stored photo.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if err := domainsvcs.EnsureDeletable(item); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	_ = s.images.Remove(ctx, item.Image)
	s.invalidate(ctx, id)
	return nil
}

// buildEdit parses the optional string fields into a domain edit and stores
// a replacement photo when one was uploaded. It returns the edit plus the
// reference of the photo being replaced ("" when the photo is unchanged).
func (s *ItemService) buildEdit(ctx context.Context, item *models.Item, in UpdateItemInput) (domainsvcs.ItemEdit, string, error) {
	var edit domainsvcs.ItemEdit

	if in.Name != nil {
		name, err := models.NewItemName(*in.Name)
		if err != nil {
			return edit, "", err
		}
		edit.Name = &name
	}
	if in.Description != nil {
		edit.Description = in.Description
	}
	if in.Category != nil {
		category, err := models.ParseCategory(*in.Category)
		if err != nil {
			return edit, "", err
		}
		edit.Category = &category
	}
	if in.Location != nil {
		location, err := models.ParseLocation(*in.Location)
		if err != nil {
			return edit, "", err
		}
		edit.Location = &location
	}
	if in.FoundDate != nil {
		foundDate, err := models.ParseFoundDate(*in.FoundDate)
		if err != nil {
			return edit, "", err
		}
		edit.FoundDate = &foundDate
	}

	if in.ImageData != nil {
		ref, err := s.images.Save(ctx, in.ImageFilename, in.ImageData)
		if err != nil {
			return edit, "", fmt.Errorf("%w: %w", lostfound.ErrValidation, err)
		}
		edit.Image = &ref
		return edit, item.Image, nil
	}
	return edit, "", nil
}

// discardNewImage removes a freshly stored replacement photo after a failed
// edit so orphan files do not pile up in the upload directory.
func (s *ItemService) discardNewImage(ctx context.Context, edit domainsvcs.ItemEdit) {
	if edit.Image != nil {
		_ = s.images.Remove(ctx, *edit.Image)
	}
}

// finishImageSwap removes the replaced photo once the edit has persisted.
func (s *ItemService) finishImageSwap(ctx context.Context, edit domainsvcs.ItemEdit, oldImage string) {
	if edit.Image != nil && oldImage != "" && oldImage != *edit.Image {
		_ = s.images.Remove(ctx, oldImage)
	}
}

func (s *ItemService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}
}

// warmCache writes an available item into Redis in the background. Claimed
// and delivered items are never cached because their claim details must
// stay out of the cache and always read fresh.
func (s *ItemService) warmCache(item *models.Item) {
	if s.cache == nil || !item.Available() {
		return
	}
	cached := &pkgcache.CachedItem{
		ID:          item.ID,
		Name:        item.Name.String(),
		Description: item.Description,
		Category:    item.Category.String(),
		Location:    item.Location.String(),
		Status:      item.Status.String(),
		Image:       item.Image,
		AddedBy:     item.AddedBy,
		FoundDate:   item.FoundDate,
		CreatedAt:   item.CreatedAt,
	}
	go func() {
		_ = s.cache.Set(context.Background(), cached)
	}()
}

// itemFromCache rebuilds a domain item from a cache entry. Only available
// entries are usable; anything else forces a Postgres read.
func itemFromCache(c *pkgcache.CachedItem) (*models.Item, bool) {
	if c.Status != models.StatusAvailable.String() {
		return nil, false
	}
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return nil, false
	}
	location, err := models.ParseLocation(c.Location)
	if err != nil {
		return nil, false
	}
	return &models.Item{
		ID:          c.ID,
		Name:        models.ItemName(c.Name),
		Description: c.Description,
		Category:    category,
		Location:    location,
		FoundDate:   c.FoundDate,
		Status:      models.StatusAvailable,
		Image:       c.Image,
		AddedBy:     c.AddedBy,
		CreatedAt:   c.CreatedAt,
	}, true
}
