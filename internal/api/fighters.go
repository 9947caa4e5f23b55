package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aristotle-me/fightmatch/internal/upstream"
)

type FightersHandler struct {
	roster   *RosterSource
	cacheTTL int
}

func NewFightersHandler(roster *RosterSource, cacheTTLSeconds int) *FightersHandler {
	return &FightersHandler{roster: roster, cacheTTL: cacheTTLSeconds}
}

// List handles GET /api/fighters. The upstream body is relayed verbatim;
// X-Cache tells the caller whether the shared cache answered.
func (h *FightersHandler) List(w http.ResponseWriter, r *http.Request) {
	body, cached, err := h.roster.Raw(r.Context(), r.URL.RawQuery)
	if err != nil {
		if errors.Is(err, upstream.ErrUnavailable) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "fighter data unavailable"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(h.cacheTTL))
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
