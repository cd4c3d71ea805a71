package environment_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	environmentfeature "github.com/dalemusser/frontenv/internal/app/features/environment"
	environmentsstore "github.com/dalemusser/frontenv/internal/app/store/environments"
	"github.com/dalemusser/frontenv/internal/domain/environment"
	"github.com/dalemusser/frontenv/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, active environment.Environment, store environmentsstore.Store) http.Handler {
	t.Helper()
	rec, err := environmentsstore.NewRecord("active", active)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	h := environmentfeature.NewHandler(rec, store, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/environment.json", h.ServeActive)
	r.Head("/environment.json", h.ServeActive)
	r.Mount("/environments", environmentfeature.Routes(h))
	return r
}

func seededStore(t *testing.T) *environmentsstore.Memory {
	t.Helper()
	store := environmentsstore.NewMemory()
	ctx := context.Background()
	for _, target := range environment.Targets() {
		env, _ := environment.ForTarget(target)
		if _, err := store.Publish(ctx, string(target), env); err != nil {
			t.Fatalf("Publish %s failed: %v", target, err)
		}
	}
	return store
}

func TestServeActive_Development(t *testing.T) {
	router := newRouter(t, environment.Development(), seededStore(t))

	req := httptest.NewRequest("GET", "/environment.json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control: got %q, want %q", cc, "no-store")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected an ETag header")
	}

	var body struct {
		Production   bool   `json:"production"`
		APIServerURL string `json:"apiServerUrl"`
		Auth0        struct {
			URL         string `json:"url"`
			Audience    string `json:"audience"`
			ClientID    string `json:"clientId"`
			CallbackURL string `json:"callbackURL"`
		} `json:"auth0"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Production {
		t.Error("production: got true, want false")
	}
	if body.APIServerURL != "http://127.0.0.1:5000" {
		t.Errorf("apiServerUrl: got %q, want %q", body.APIServerURL, "http://127.0.0.1:5000")
	}
	if body.Auth0.ClientID != "P0VebM7uPsk4eJewUKE6eiiUnim9gqMP" {
		t.Errorf("auth0.clientId: got %q", body.Auth0.ClientID)
	}
	if body.Auth0.CallbackURL != "http://localhost:8100" {
		t.Errorf("auth0.callbackURL: got %q", body.Auth0.CallbackURL)
	}
}

func TestServeActive_ProductionIsCacheable(t *testing.T) {
	router := newRouter(t, environment.Production(), seededStore(t))

	req := httptest.NewRequest("GET", "/environment.json", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=300" {
		t.Errorf("Cache-Control: got %q", cc)
	}
}

func TestServeActive_NotModified(t *testing.T) {
	router := newRouter(t, environment.Development(), seededStore(t))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest("GET", "/environment.json", nil))
	etag := first.Header().Get("ETag")

	req := httptest.NewRequest("GET", "/environment.json", nil)
	req.Header.Set("If-None-Match", `"other", `+etag)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("expected status %d, got %d", http.StatusNotModified, rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestServeNamed(t *testing.T) {
	router := newRouter(t, environment.Development(), seededStore(t))

	for _, path := range []string{"/environments/production", "/environments/production.json"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rec.Code)
		}
		var got environment.Environment
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s: failed to parse response: %v", path, err)
		}
		if got != environment.Production() {
			t.Errorf("%s: got %+v, want the production variant", path, got)
		}
	}
}

func TestHeadRequests(t *testing.T) {
	router := newRouter(t, environment.Development(), seededStore(t))

	for _, path := range []string{"/environment.json", "/environments/", "/environments/production"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("HEAD", path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("HEAD %s: expected status %d, got %d", path, http.StatusOK, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("HEAD %s: Content-Type: got %q", path, ct)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("HEAD", "/environments/staging", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("HEAD unknown variant: expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServeNamed_NotFound(t *testing.T) {
	router := newRouter(t, environment.Development(), seededStore(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/environments/staging", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Error != "environment not found" {
		t.Errorf("error: got %q", body.Error)
	}
}

func TestList(t *testing.T) {
	router := newRouter(t, environment.Development(), seededStore(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/environments/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var body struct {
		Environments []struct {
			Name       string `json:"name"`
			Production bool   `json:"production"`
		} `json:"environments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body.Environments) != 2 {
		t.Fatalf("expected 2 environments, got %d", len(body.Environments))
	}
	if body.Environments[0].Name != "development" || body.Environments[0].Production {
		t.Errorf("first entry: got %+v", body.Environments[0])
	}
	if body.Environments[1].Name != "production" || !body.Environments[1].Production {
		t.Errorf("second entry: got %+v", body.Environments[1])
	}
}

// failingStore returns err from every call.
type failingStore struct{ err error }

func (f failingStore) Publish(context.Context, string, environment.Environment) (environmentsstore.Record, error) {
	return environmentsstore.Record{}, f.err
}
func (f failingStore) Get(context.Context, string) (environmentsstore.Record, error) {
	return environmentsstore.Record{}, f.err
}
func (f failingStore) List(context.Context) ([]environmentsstore.Record, error) {
	return nil, f.err
}

func TestServeNamed_StoreErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"backend failure", errors.New("connection reset"), http.StatusInternalServerError},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, _ := environmentsstore.NewRecord("active", environment.Development())
			h := environmentfeature.NewHandler(active, failingStore{err: tt.err}, zap.NewNop())

			req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/environments/development", nil), "name", "development")
			rec := httptest.NewRecorder()
			h.ServeNamed(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
