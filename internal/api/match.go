package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aristotle-me/fightmatch/internal/matching"
	"github.com/aristotle-me/fightmatch/internal/quiz"
	"github.com/aristotle-me/fightmatch/internal/upstream"
)

type MatchHandler struct {
	roster *RosterSource
	engine *matching.Engine
}

func NewMatchHandler(roster *RosterSource, engine *matching.Engine) *MatchHandler {
	return &MatchHandler{roster: roster, engine: engine}
}

// Questions handles GET /api/quiz/questions.
func (h *MatchHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": quiz.Questions,
	})
}

// Match handles POST /api/match: quiz answers in, ranked fighters out.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers []struct {
			QuestionID  string `json:"questionId"`
			OptionIndex int    `json:"optionIndex"`
		} `json:"answers"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "answers are required"})
		return
	}

	answers := make([]quiz.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		resolved, err := quiz.Resolve(a.QuestionID, a.OptionIndex)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		answers = append(answers, resolved)
	}
	profile := quiz.Aggregate(answers)

	roster, err := h.roster.Qualified(r.Context())
	if err != nil {
		if errors.Is(err, upstream.ErrUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "fighter data unavailable"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	result, err := h.engine.Match(profile, roster, time.Now())
	if err != nil {
		if errors.Is(err, matching.ErrNoCandidates) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "fighter data unavailable"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	matchesTotal.Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile":    profile,
		"primary":    result.Primary,
		"alternates": result.Alternates,
	})
}
