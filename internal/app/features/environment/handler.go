package environment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	environmentsstore "github.com/dalemusser/frontenv/internal/app/store/environments"
	"github.com/dalemusser/frontenv/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Cache policies for served descriptors. Development builds must pick up
// config changes on reload; production builds may cache briefly.
const (
	cacheDevelopment = "no-store"
	cacheProduction  = "public, max-age=300"
)

// Handler serves environment descriptors as JSON.
type Handler struct {
	Active environmentsstore.Record
	Store  environmentsstore.Store
	Log    *zap.Logger
}

// NewHandler constructs a Handler serving active at /environment.json and
// the records of store under /environments.
func NewHandler(active environmentsstore.Record, store environmentsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Active: active,
		Store:  store,
		Log:    logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse struct {
	Environments []listItem `json:"environments"`
}

type listItem struct {
	Name       string `json:"name"`
	Production bool   `json:"production"`
	Revision   string `json:"revision"`
}

// ServeActive handles GET /environment.json.
func (h *Handler) ServeActive(w http.ResponseWriter, r *http.Request) {
	writeRecord(w, r, h.Active)
}

// ServeNamed handles GET /environments/{name}. A trailing ".json" is ignored.
func (h *Handler) ServeNamed(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "name"), ".json")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	rec, err := h.Store.Get(ctx, name)
	if errors.Is(err, environmentsstore.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "environment not found"})
		return
	}
	if err != nil {
		h.serverError(w, "get environment failed", err, zap.String("name", name))
		return
	}
	writeRecord(w, r, rec)
}

// List handles GET /environments/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	recs, err := h.Store.List(ctx)
	if err != nil {
		h.serverError(w, "list environments failed", err)
		return
	}

	resp := listResponse{Environments: make([]listItem, 0, len(recs))}
	for _, rec := range recs {
		resp.Environments = append(resp.Environments, listItem{
			Name:       rec.Name,
			Production: rec.Environment.Production,
			Revision:   rec.Revision,
		})
	}
	w.Header().Set("Cache-Control", cacheDevelopment)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	if errors.Is(err, context.DeadlineExceeded) {
		h.Log.Warn(msg+": timeout", append(fields, zap.Error(err))...)
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "timed out"})
		return
	}
	h.Log.Error(msg, append(fields, zap.Error(err))...)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// writeRecord writes the descriptor with an ETag derived from its revision,
// answering 304 when the client already holds that revision.
func writeRecord(w http.ResponseWriter, r *http.Request, rec environmentsstore.Record) {
	etag := `"` + rec.Revision + `"`
	w.Header().Set("ETag", etag)
	if rec.Environment.Production {
		w.Header().Set("Cache-Control", cacheProduction)
	} else {
		w.Header().Set("Cache-Control", cacheDevelopment)
	}

	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, rec.Environment)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
