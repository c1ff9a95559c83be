package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusfound/campusfound/pkg/auth"
	"github.com/campusfound/campusfound/pkg/config"
	"github.com/campusfound/campusfound/pkg/logger"
	appsvcs "github.com/campusfound/campusfound/services/lostfound/application/services"
	lostfound "github.com/campusfound/campusfound/services/lostfound/domain"
	"github.com/campusfound/campusfound/services/lostfound/domain/models"
	"github.com/campusfound/campusfound/services/lostfound/domain/repositories"
)

// testLogger creates a logger that discards everything below error level.
func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// memRepo is an in-memory ItemRepository for handler tests.
type memRepo struct {
	items map[uuid.UUID]*models.Item
	order []uuid.UUID
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[uuid.UUID]*models.Item{}}
}

func (m *memRepo) Save(_ context.Context, item *models.Item) error {
	cp := *item
	m.items[item.ID] = &cp
	m.order = append(m.order, item.ID)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, lostfound.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *memRepo) Find(_ context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	var out []*models.Item
	for i := len(m.order) - 1; i >= 0; i-- {
		item := m.items[m.order[i]]
		if opts.Status != nil && item.Status != *opts.Status {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memRepo) Search(_ context.Context, term string) ([]*models.Item, error) {
	var out []*models.Item
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.Name.String()), strings.ToLower(term)) {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepo) Recent(_ context.Context, limit int) ([]*models.Item, error) {
	var out []*models.Item
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *m.items[m.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, item *models.Item) error {
	stored, ok := m.items[item.ID]
	if !ok {
		return lostfound.ErrItemNotFound
	}
	if stored.Status != item.Status {
		return fmt.Errorf("%w: item is now %s", lostfound.ErrClaimConflict, stored.Status)
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memRepo) ClaimAvailable(_ context.Context, id uuid.UUID, claim models.Claim) (*models.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, lostfound.ErrItemNotFound
	}
	if item.Status != models.StatusAvailable {
		return nil, lostfound.ErrClaimConflict
	}
	item.Status = models.StatusClaimed
	item.ClaimedBy = &claim
	cp := *item
	return &cp, nil
}

func (m *memRepo) MarkDelivered(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, lostfound.ErrItemNotFound
	}
	if item.Status != models.StatusClaimed {
		return nil, fmt.Errorf("%w: item is %s", lostfound.ErrInvalidTransition, item.Status)
	}
	item.Status = models.StatusDelivered
	cp := *item
	return &cp, nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	item, ok := m.items[id]
	if !ok {
		return lostfound.ErrItemNotFound
	}
	if item.Status.Terminal() {
		return lostfound.ErrInvalidTransition
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) CountByStatus(_ context.Context) (map[models.Status]int, error) {
	counts := map[models.Status]int{}
	for _, item := range m.items {
		counts[item.Status]++
	}
	return counts, nil
}

// memImages satisfies storage.ImageStore without touching the filesystem.
type memImages struct {
	n int
}

func (m *memImages) Save(_ context.Context, _ string, _ io.Reader) (string, error) {
	m.n++
	return fmt.Sprintf("/uploads/photo-%d.jpg", m.n), nil
}

func (m *memImages) Remove(_ context.Context, _ string) error {
	return nil
}

type fixture struct {
	repo   *memRepo
	svcs   *appsvcs.Services
	router chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	svcs := &appsvcs.Services{Item: appsvcs.NewItemService(repo, nil, &memImages{}, testLogger())}

	r := chi.NewRouter()
	r.Route("/items", func(r chi.Router) {
		r.Get("/", NewListItemsHandler(svcs).Execute)
		r.Get("/recent", NewRecentItemsHandler(svcs, 8).Execute)
		r.Get("/search", NewSearchItemsHandler(svcs).Execute)
		r.Get("/statistics", NewGetStatisticsHandler(svcs).Execute)
		r.Get("/{id}", NewGetItemHandler(svcs).Execute)
		r.Put("/{id}/claim", NewClaimItemHandler(svcs).Execute)
		r.Post("/", NewPostItemHandler(svcs).Execute)
		r.Put("/{id}", NewUpdateItemHandler(svcs).Execute)
		r.Put("/{id}/delivered", NewDeliverItemHandler(svcs).Execute)
		r.Put("/{id}/update-claimed", NewUpdateClaimedItemHandler(svcs).Execute)
		r.Delete("/{id}", NewDeleteItemHandler(svcs).Execute)
	})

	return &fixture{repo: repo, svcs: svcs, router: r}
}

func (f *fixture) seedItem(t *testing.T) *models.Item {
	t.Helper()
	item, err := f.svcs.Item.Create(context.Background(), appsvcs.CreateItemInput{
		Name:          "Black Wallet",
		Description:   "Leather wallet",
		Category:      "Accessories",
		Location:      "Library",
		FoundDate:     "15-01-2024",
		AddedBy:       "campus_guard",
		ImageFilename: "wallet.jpg",
		ImageData:     strings.NewReader("bytes"),
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func (f *fixture) do(t *testing.T, method, path string, body io.Reader, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func asGuard(req *http.Request) {
	ctx := auth.WithActor(req.Context(), auth.Actor{Username: "campus_guard", Role: auth.RoleGuard})
	*req = *req.WithContext(ctx)
}

func claimBody() io.Reader {
	return strings.NewReader(`{
		"studentName": "Asha Verma",
		"rollNumber": "12345",
		"studyYear": "Second Year",
		"contactNumber": "9876543210"
	}`)
}

func TestClaimItemEndpoint(t *testing.T) {
	t.Run("claims an available item", func(t *testing.T) {
		f := newFixture(t)
		item := f.seedItem(t)

		w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/claim", claimBody())
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp ItemResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Status != "claimed" || resp.ClaimedBy == nil {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.ClaimedBy.RollNumber != "12345" {
			t.Fatalf("claim details lost: %+v", resp.ClaimedBy)
		}
	})

	t.Run("second claim gets a 409", func(t *testing.T) {
		f := newFixture(t)
		item := f.seedItem(t)

		if w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/claim", claimBody()); w.Code != http.StatusOK {
			t.Fatalf("first claim failed: %d", w.Code)
		}
		if w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/claim", claimBody()); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture(t)
		if w := f.do(t, http.MethodPut, "/items/"+uuid.NewString()+"/claim", claimBody()); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		f := newFixture(t)
		if w := f.do(t, http.MethodPut, "/items/not-a-uuid/claim", claimBody()); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid student details fail validation", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"short roll number", `{"studentName":"A","rollNumber":"123","studyYear":"First Year","contactNumber":"9876543210"}`},
			{"letters in contact", `{"studentName":"A","rollNumber":"12345","studyYear":"First Year","contactNumber":"98765abcde"}`},
			{"unknown study year", `{"studentName":"A","rollNumber":"12345","studyYear":"Fifth Year","contactNumber":"9876543210"}`},
			{"missing name", `{"rollNumber":"12345","studyYear":"First Year","contactNumber":"9876543210"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				item := f.seedItem(t)
				w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/claim", strings.NewReader(tt.body))
				if w.Code != http.StatusUnprocessableEntity {
					t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
				}
			})
		}
	})
}

func multipartItemForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "photo.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestPostItemEndpoint(t *testing.T) {
	fields := map[string]string{
		"name":        "Blue Umbrella",
		"description": "Folding umbrella",
		"category":    "Accessories",
		"location":    "Canteen Area",
		"foundDate":   "10-02-2024",
	}

	t.Run("registers an item for the guard", func(t *testing.T) {
		f := newFixture(t)
		body, contentType := multipartItemForm(t, fields, true)

		req := httptest.NewRequest(http.MethodPost, "/items/", body)
		req.Header.Set("Content-Type", contentType)
		asGuard(req)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp ItemResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Status != "available" || resp.AddedBy != "campus_guard" {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.Image == "" {
			t.Fatal("expected stored image reference")
		}
	})

	t.Run("missing image is rejected", func(t *testing.T) {
		f := newFixture(t)
		body, contentType := multipartItemForm(t, fields, false)

		req := httptest.NewRequest(http.MethodPost, "/items/", body)
		req.Header.Set("Content-Type", contentType)
		asGuard(req)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		f := newFixture(t)
		body, contentType := multipartItemForm(t, fields, true)

		req := httptest.NewRequest(http.MethodPost, "/items/", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestListItemsEndpoint(t *testing.T) {
	f := newFixture(t)
	a := f.seedItem(t)
	f.seedItem(t)

	if w := f.do(t, http.MethodPut, "/items/"+a.ID.String()+"/claim", claimBody()); w.Code != http.StatusOK {
		t.Fatalf("claim: %d", w.Code)
	}

	t.Run("lists everything by default", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/items/", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp ItemListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Total != 2 || len(resp.Items) != 2 {
			t.Fatalf("expected 2 items, got %+v", resp)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/items/?status=claimed", nil)
		var resp ItemListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Total != 1 || resp.Items[0].Status != "claimed" {
			t.Fatalf("unexpected filtered list: %+v", resp)
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		if w := f.do(t, http.MethodGet, "/items/?status=lost", nil); w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

func TestRecentItemsEndpoint(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10; i++ {
		f.seedItem(t)
	}

	t.Run("defaults to the configured limit", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/items/recent", nil)
		var resp ItemListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Items) != 8 {
			t.Fatalf("expected 8 items, got %d", len(resp.Items))
		}
	})

	t.Run("honors an explicit limit", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/items/recent?limit=3", nil)
		var resp ItemListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(resp.Items))
		}
	})
}

func TestDeliverItemEndpoint(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t)

	t.Run("available item cannot be delivered", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/delivered", nil, asGuard)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("claimed item is delivered", func(t *testing.T) {
		if w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/claim", claimBody()); w.Code != http.StatusOK {
			t.Fatalf("claim: %d", w.Code)
		}
		w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/delivered", nil, asGuard)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp ItemResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Status != "delivered" {
			t.Fatalf("expected delivered, got %s", resp.Status)
		}
	})
}

func TestUpdateClaimedEndpoint(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t)
	if w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/claim", claimBody()); w.Code != http.StatusOK {
		t.Fatalf("claim: %d", w.Code)
	}

	body := strings.NewReader(`{
		"claimedBy": {
			"studentName": "Asha V",
			"rollNumber": "54321",
			"studyYear": "Third Year",
			"contactNumber": "9123456780"
		}
	}`)
	w := f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/update-claimed", body, asGuard)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ItemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ClaimedBy == nil || resp.ClaimedBy.RollNumber != "54321" {
		t.Fatalf("contact edit not applied: %+v", resp.ClaimedBy)
	}
	if resp.ClaimedBy.ClaimedDate.IsZero() {
		t.Fatal("claim date lost in edit")
	}
}

func TestDeleteItemEndpoint(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t)

	w := f.do(t, http.MethodDelete, "/items/"+item.ID.String(), nil, asGuard)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/items/"+item.ID.String(), nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	f := newFixture(t)
	a := f.seedItem(t)
	f.seedItem(t)
	f.seedItem(t)
	if w := f.do(t, http.MethodPut, "/items/"+a.ID.String()+"/claim", claimBody()); w.Code != http.StatusOK {
		t.Fatalf("claim: %d", w.Code)
	}

	w := f.do(t, http.MethodGet, "/items/statistics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp StatisticsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 || resp.Available != 2 || resp.Claimed != 1 {
		t.Fatalf("unexpected statistics: %+v", resp)
	}
}

func TestSearchItemsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t)

	w := f.do(t, http.MethodGet, "/items/search?q=wallet", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp ItemListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(resp.Items))
	}
}
