package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/terravista/estate-core/internal/middleware"
	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/modules/storage/upload"
)

const testToken = "test-token"

type fakeStore struct {
	mu    sync.Mutex
	items map[string]*models.Project
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]*models.Project{}}
}

func (s *fakeStore) List(context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeStore) Insert(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Touch(time.Now())
	cp := *p
	s.items[p.ID.Hex()] = &cp
	return nil
}

func (s *fakeStore) Update(_ context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&p.Name, patch.Name)
	apply(&p.Size, patch.Size)
	apply(&p.Location, patch.Location)
	apply(&p.Price, patch.Price)
	apply(&p.Facing, patch.Facing)
	apply(&p.Image, patch.Image)
	apply(&p.Brochure, patch.Brochure)
	apply(&p.Status, patch.Status)
	apply(&p.Description, patch.Description)
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *fakeStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type memBackend struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (b *memBackend) Put(_ context.Context, name, _ string, payload []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[name] = payload
	return "/uploads/" + name, nil
}

func (b *memBackend) Remove(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.files, name)
	return nil
}

func (b *memBackend) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.files)
}

type staticVerifier struct{}

func (staticVerifier) VerifyToken(_ context.Context, token string) (*models.User, error) {
	if token != testToken {
		return nil, errors.New("bad token")
	}
	return &models.User{Username: "admin"}, nil
}

func newTestRouter(store *fakeStore, backend *memBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(store, upload.New(backend))
	api := r.Group("/api")
	NewHandler(svc, zap.NewNop()).RegisterRoutes(api, middleware.Auth(staticVerifier{}))
	return r
}

// formFile is one file part: field, filename, declared content type.
type formFile struct {
	field, name, contentType string
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("binary")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func do(t *testing.T, r *gin.Engine, method, path string, body io.Reader, contentType string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %q: %v", w.Body, err)
	}
}

func validFields() map[string]string {
	return map[string]string{
		"name":     "Lakeview Residency",
		"size":     "1200 sqft",
		"location": "North Bangalore",
		"price":    "75L",
		"facing":   "East",
	}
}

func TestCreateProject(t *testing.T) {
	store := newFakeStore()
	backend := &memBackend{files: map[string][]byte{}}
	r := newTestRouter(store, backend)

	body, ct := multipartBody(t, validFields(),
		formFile{"image", "front.jpg", "image/jpeg"},
		formFile{"brochure", "plan.pdf", "application/pdf"},
	)
	w := do(t, r, http.MethodPost, "/api/projects", body, ct, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var got models.Project
	decode(t, w, &got)
	if got.ID.IsZero() {
		t.Error("response missing _id")
	}
	if got.Status != models.ProjectStatusOngoing {
		t.Errorf("Status = %q, want default %q", got.Status, models.ProjectStatusOngoing)
	}
	if got.Image == "" || got.Brochure == "" {
		t.Errorf("file urls not set: image=%q brochure=%q", got.Image, got.Brochure)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if backend.len() != 2 {
		t.Errorf("backend holds %d files, want 2", backend.len())
	}
}

func TestCreateProjectValidation(t *testing.T) {
	cases := []struct {
		name    string
		drop    string
		wantMsg string
	}{
		{"missing name", "name", "Project name is required"},
		{"missing size", "size", "Project size is required"},
		{"missing location", "location", "Location is required"},
		{"missing price", "price", "Price is required"},
		{"missing facing", "facing", "Facing direction is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			r := newTestRouter(store, &memBackend{files: map[string][]byte{}})

			fields := validFields()
			delete(fields, tc.drop)
			body, ct := multipartBody(t, fields)
			w := do(t, r, http.MethodPost, "/api/projects", body, ct, true)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var resp struct {
				Message string `json:"message"`
			}
			decode(t, w, &resp)
			if resp.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", resp.Message, tc.wantMsg)
			}
			if store.len() != 0 {
				t.Error("invalid request reached the store")
			}
		})
	}
}

func TestCreateProjectBadStatus(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store, &memBackend{files: map[string][]byte{}})

	fields := validFields()
	fields["status"] = "paused"
	body, ct := multipartBody(t, fields)
	w := do(t, r, http.MethodPost, "/api/projects", body, ct, true)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateProjectRejectedFileWritesNothing(t *testing.T) {
	store := newFakeStore()
	backend := &memBackend{files: map[string][]byte{}}
	r := newTestRouter(store, backend)

	body, ct := multipartBody(t, validFields(),
		formFile{"image", "payload.exe", "application/octet-stream"},
	)
	w := do(t, r, http.MethodPost, "/api/projects", body, ct, true)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body)
	}
	if store.len() != 0 {
		t.Error("record persisted despite rejected file")
	}
	if backend.len() != 0 {
		t.Error("file written despite rejection")
	}
}

func TestCreateProjectRequiresMultipart(t *testing.T) {
	r := newTestRouter(newFakeStore(), &memBackend{files: map[string][]byte{}})

	w := do(t, r, http.MethodPost, "/api/projects", bytes.NewBufferString(`{"name":"x"}`), "application/json", true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store, &memBackend{files: map[string][]byte{}})

	body, ct := multipartBody(t, validFields())
	for _, req := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects/abc"},
		{http.MethodDelete, "/api/projects/abc"},
	} {
		w := do(t, r, req.method, req.path, body, ct, false)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", req.method, req.path, w.Code)
		}
	}
	if store.len() != 0 {
		t.Error("unauthenticated request reached the store")
	}
}

func TestReadsArePublic(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store, &memBackend{files: map[string][]byte{}})

	w := do(t, r, http.MethodGet, "/api/projects", nil, "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}

	var items []models.Project
	decode(t, w, &items)
	if items == nil {
		t.Error("empty list should still be a JSON array")
	}
}

func TestGetProjectNotFound(t *testing.T) {
	r := newTestRouter(newFakeStore(), &memBackend{files: map[string][]byte{}})

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-objectid"} {
		w := do(t, r, http.MethodGet, "/api/projects/"+id, nil, "", false)
		if w.Code != http.StatusNotFound {
			t.Errorf("get %q = %d, want 404", id, w.Code)
		}
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store, &memBackend{files: map[string][]byte{}})

	body, ct := multipartBody(t, validFields())
	w := do(t, r, http.MethodPost, "/api/projects", body, ct, true)
	var created models.Project
	decode(t, w, &created)

	body, ct = multipartBody(t, map[string]string{"price": "82L"})
	w = do(t, r, http.MethodPut, "/api/projects/"+created.ID.Hex(), body, ct, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body)
	}

	var updated models.Project
	decode(t, w, &updated)
	if updated.Price != "82L" {
		t.Errorf("Price = %q, want 82L", updated.Price)
	}
	if updated.Name != created.Name || updated.Location != created.Location {
		t.Error("fields not in the patch were changed")
	}
}

func TestUpdateProjectNotFound(t *testing.T) {
	r := newTestRouter(newFakeStore(), &memBackend{files: map[string][]byte{}})

	body, ct := multipartBody(t, map[string]string{"price": "82L"})
	w := do(t, r, http.MethodPut, "/api/projects/"+primitive.NewObjectID().Hex(), body, ct, true)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteProject(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store, &memBackend{files: map[string][]byte{}})

	body, ct := multipartBody(t, validFields())
	w := do(t, r, http.MethodPost, "/api/projects", body, ct, true)
	var created models.Project
	decode(t, w, &created)

	w = do(t, r, http.MethodDelete, "/api/projects/"+created.ID.Hex(), nil, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	if resp.Message != "Project deleted successfully" {
		t.Errorf("message = %q", resp.Message)
	}

	w = do(t, r, http.MethodDelete, "/api/projects/"+created.ID.Hex(), nil, "", true)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
}
