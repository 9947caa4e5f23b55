package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aristotle-me/fightmatch/internal/events"
	"github.com/aristotle-me/fightmatch/internal/stats"
)

// maxBodyBytes caps every JSON request body the gateway accepts.
const maxBodyBytes = 1024

type StatsHandler struct {
	stats    *stats.Service
	events   events.Publisher
	cacheTTL int
}

func NewStatsHandler(s *stats.Service, p events.Publisher, cacheTTLSeconds int) *StatsHandler {
	return &StatsHandler{stats: s, events: p, cacheTTL: cacheTTLSeconds}
}

// Record handles POST /api/stats/record.
func (h *StatsHandler) Record(w http.ResponseWriter, r *http.Request) {
	// Reject oversized payloads before touching the body.
	if r.ContentLength > maxBodyBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "payload too large"})
		return
	}

	var req struct {
		FighterSlug string `json:"fighterSlug"`
		FighterName string `json:"fighterName"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.stats.Record(r.Context(), req.FighterSlug, req.FighterName)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidSlug) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "valid fighterSlug is required"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record result"})
		return
	}
	quizzesRecordedTotal.Inc()

	if h.events != nil {
		_ = h.events.Publish(events.SubjectResultRecorded, events.ResultRecordedEvent{
			EventID:      uuid.NewString(),
			FighterSlug:  stats.SanitizeSlug(req.FighterSlug),
			FighterName:  req.FighterName,
			TotalQuizzes: result.TotalQuizzes,
			RecordedAt:   time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"totalQuizzes": result.TotalQuizzes,
		"fighterCount": result.FighterCount,
	})
}

// Global handles GET /api/stats.
func (h *StatsHandler) Global(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.Global(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load stats"})
		return
	}
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(h.cacheTTL))
	writeJSON(w, http.StatusOK, out)
}

// Fighter handles GET /api/stats/fighter/{slug}.
func (h *StatsHandler) Fighter(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.Fighter(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, stats.ErrInvalidSlug) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid fighter slug"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load stats"})
		return
	}
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(h.cacheTTL))
	writeJSON(w, http.StatusOK, out)
}
