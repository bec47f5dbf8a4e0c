package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"linkmap/core-go/internal/metrics"
	"linkmap/core-go/internal/overlay"
)

// ReloadFunc runs one load+preprocess pass on demand.
type ReloadFunc func(ctx context.Context) (*overlay.Snapshot, error)

// Handler owns the current snapshot and the filter state. The engine itself
// is lock-free; HTTP is the one concurrent boundary, so the holder
// serializes access here.
type Handler struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
	reload  ReloadFunc

	mu    sync.RWMutex
	snap  *overlay.Snapshot
	state overlay.FilterState
}

func NewHandler(log zerolog.Logger, m *metrics.Metrics, reload ReloadFunc) *Handler {
	return &Handler{
		log:     log,
		metrics: m,
		reload:  reload,
		state:   overlay.DefaultFilterState(),
	}
}

// SetSnapshot swaps in a freshly preprocessed snapshot.
func (h *Handler) SetSnapshot(s *overlay.Snapshot) {
	h.mu.Lock()
	h.snap = s
	h.mu.Unlock()
}

func (h *Handler) snapshot() *overlay.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

func (h *Handler) filterState() overlay.FilterState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state.Clone()
}

func (h *Handler) setFilterState(s overlay.FilterState) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(h.accessLog)

	// Health
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyZ)

	// Metrics
	r.Get("/metrics", h.metrics.Handler().ServeHTTP)

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Get("/overlay", h.handleGetOverlay)
			r.Get("/catalog", h.handleGetCatalog)
			r.Route("/filters", func(r chi.Router) {
				r.Get("/", h.handleGetFilters)
				r.Put("/", h.handlePutFilters)
			})
			r.Post("/reload", h.handleReload)
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		h.metrics.ObserveHTTPRequest(r.Method, r.URL.Path, ww.Status(), duration)
		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("http_request")
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	resp := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		resp["error"].(map[string]any)["details"] = details
	}
	h.writeJSON(w, status, resp)
}

func decodeJSONStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected extra data after JSON body")
		}
		return err
	}
	return nil
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleReadyZ(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	if snap == nil {
		h.writeError(w, http.StatusServiceUnavailable, "not_ready", "no snapshot loaded yet", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"ready":       true,
		"snapshot_id": snap.ID,
		"built_at":    snap.BuiltAt,
	})
}

// ensureSnapshot fails the request when preprocessing has not completed yet;
// nothing in the engine is safe to query before the first snapshot.
func (h *Handler) ensureSnapshot(w http.ResponseWriter) *overlay.Snapshot {
	snap := h.snapshot()
	if snap == nil {
		h.writeError(w, http.StatusServiceUnavailable, "not_ready", "no snapshot loaded yet", nil)
		return nil
	}
	return snap
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	if h.reload == nil {
		h.writeError(w, http.StatusServiceUnavailable, "reload_unavailable", "no record source configured", nil)
		return
	}

	snap, err := h.reload(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("manual reload failed")
		h.writeError(w, http.StatusBadGateway, "reload_failed", "failed to reload record sources", map[string]any{"error": err.Error()})
		return
	}

	h.SetSnapshot(snap)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"snapshot_id": snap.ID,
		"sites":       len(snap.Sites),
		"links":       len(snap.Links),
		"aggregates":  len(snap.Aggregates),
		"dropped": map[string]any{
			"unresolved":    snap.Stats.Unresolved,
			"rule_filtered": snap.Stats.RuleFiltered,
		},
	})
}
