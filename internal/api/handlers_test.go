package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristotle-me/fightmatch/internal/config"
	"github.com/aristotle-me/fightmatch/internal/events"
	"github.com/aristotle-me/fightmatch/internal/matching"
	"github.com/aristotle-me/fightmatch/internal/stats"
	"github.com/aristotle-me/fightmatch/internal/store"
	"github.com/aristotle-me/fightmatch/internal/upstream"
)

// fakeUpstream serves a canned roster body and counts fetches.
type fakeUpstream struct {
	body      []byte
	err       error
	calls     int
	lastQuery string
}

func (f *fakeUpstream) Fighters(ctx context.Context, rawQuery string) ([]byte, error) {
	f.calls++
	f.lastQuery = rawQuery
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

// fakePublisher records published subjects.
type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakePublisher) Close() {}

func (f *fakePublisher) seen(subject string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subjects {
		if s == subject {
			return true
		}
	}
	return false
}

func rosterBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"name": "Max Holloway", "wins": 25, "losses": 7,
				"slpm": 7.2, "str_acc": 0.47, "td_avg": 0.3, "sub_avg": 0.3,
				"str_def": 0.6, "td_def": 0.83, "sapm": 4.8,
				"fights": []map[string]string{
					{"result": "W", "method": "KO/TKO", "event_date": "2025-04-12"},
					{"result": "W", "method": "Decision", "event_date": "2024-10-26"},
				},
			},
			{
				"name": "Charles Oliveira", "wins": 34, "losses": 9,
				"slpm": 3.5, "str_acc": 0.53, "td_avg": 2.3, "sub_avg": 2.7,
				"str_def": 0.55, "td_def": 0.55, "sapm": 3.2,
				"fights": []map[string]string{
					{"result": "W", "method": "Submission (rear-naked choke)", "event_date": "2025-01-18"},
				},
			},
			// Too little history to qualify.
			{"name": "Debut Guy", "wins": 1, "losses": 0},
		},
	})
	require.NoError(t, err)
	return body
}

type fixture struct {
	store    *store.MemoryStore
	upstream *fakeUpstream
	events   *fakePublisher
	handler  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    store.NewMemoryStore(),
		upstream: &fakeUpstream{body: rosterBody(t)},
		events:   &fakePublisher{},
	}
	cfg := &config.Config{}
	cfg.Upstream.CacheTTLSeconds = 3600
	cfg.Upstream.RosterLimit = 10000
	cfg.Gateway.AllowedOrigins = []string{"https://aristotle.me"}
	cfg.Gateway.RateWindowSeconds = 60
	cfg.Gateway.RateMaxRequests = 1000
	cfg.Gateway.RateRecordMax = 1000
	cfg.Gateway.StatsCacheSeconds = 30

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := matching.NewEngine(rand.New(rand.NewSource(1)), logger)
	f.handler = NewRouter(f.store, f.upstream, f.events, engine, cfg, logger)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Origin", "https://aristotle.me")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestQuestionsEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, "GET", "/api/quiz/questions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Questions []struct {
			ID      string `json:"id"`
			Options []struct {
				Text string `json:"text"`
			} `json:"options"`
		} `json:"questions"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Questions, 5)
	for _, q := range resp.Questions {
		assert.Len(t, q.Options, 4)
	}
}

func TestRecordAndGlobalStats(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		w := f.do(t, "POST", "/api/stats/record", map[string]string{
			"fighterSlug": "Max Holloway",
			"fighterName": "Max Holloway",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := f.do(t, "POST", "/api/stats/record", map[string]string{
		"fighterSlug": "charles-oliveira",
		"fighterName": "Charles Oliveira",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var rec struct {
		Success      bool `json:"success"`
		TotalQuizzes int  `json:"totalQuizzes"`
		FighterCount int  `json:"fighterCount"`
	}
	decode(t, w, &rec)
	assert.True(t, rec.Success)
	assert.Equal(t, 4, rec.TotalQuizzes)
	assert.Equal(t, 1, rec.FighterCount)

	w = f.do(t, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=30", w.Header().Get("Cache-Control"))

	var global stats.GlobalStats
	decode(t, w, &global)
	assert.Equal(t, 4, global.TotalQuizzes)
	require.Len(t, global.TopFighters, 2)
	assert.Equal(t, "max-holloway", global.TopFighters[0].Slug)
	assert.Equal(t, 3, global.TopFighters[0].Count)
	assert.Equal(t, "75.0", global.TopFighters[0].Percentage)

	assert.True(t, f.events.seen(events.SubjectResultRecorded))
}

func TestRecordRejectsOversizedBody(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("POST", "/api/stats/record", strings.NewReader("{}"))
	req.Header.Set("Origin", "https://aristotle.me")
	req.ContentLength = 4096
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRecordRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("POST", "/api/stats/record", strings.NewReader("{not json"))
	req.Header.Set("Origin", "https://aristotle.me")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, "POST", "/api/stats/record", map[string]string{"fighterSlug": "!!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFighterStatsEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/stats/record", map[string]string{
		"fighterSlug": "max-holloway",
		"fighterName": "Max Holloway",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "GET", "/api/stats/fighter/max-holloway", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fs stats.FighterStats
	decode(t, w, &fs)
	assert.Equal(t, 1, fs.Count)
	require.NotNil(t, fs.Rank)
	assert.Equal(t, 1, *fs.Rank)

	// Unknown but valid slug: zero counts, nil rank.
	w = f.do(t, "GET", "/api/stats/fighter/nobody-here", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &fs)
	assert.Equal(t, 0, fs.Count)
	assert.Nil(t, fs.Rank)
}

func TestFightersProxyCaching(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "GET", "/api/fighters?limit=25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, 1, f.upstream.calls)
	assert.Equal(t, "limit=25", f.upstream.lastQuery)

	// Seed the cache as the async writer would, then expect a HIT with no
	// further upstream traffic.
	require.NoError(t, f.store.Put(context.Background(), rosterCacheKey, f.upstream.body, 0))

	w = f.do(t, "GET", "/api/fighters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, f.upstream.calls)
}

func TestFightersProxyUpstreamDown(t *testing.T) {
	f := newFixture(t)
	f.upstream.err = fmt.Errorf("%w: connection refused", upstream.ErrUnavailable)

	w := f.do(t, "GET", "/api/fighters", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func matchRequest() map[string]interface{} {
	return map[string]interface{}{
		"answers": []map[string]interface{}{
			{"questionId": "approach", "optionIndex": 0},
			{"questionId": "cardio", "optionIndex": 0},
			{"questionId": "finish", "optionIndex": 0},
			{"questionId": "style", "optionIndex": 1},
			{"questionId": "mental", "optionIndex": 3},
		},
	}
}

func TestMatchEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/match", matchRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Profile    map[string]float64 `json:"profile"`
		Primary    matching.Candidate `json:"primary"`
		Alternates []matching.Candidate `json:"alternates"`
	}
	decode(t, w, &resp)

	assert.Equal(t, 100, resp.Primary.Percentage)
	assert.NotEmpty(t, resp.Primary.Fighter.Name)
	assert.Greater(t, resp.Primary.Score, 0.0)
	assert.Len(t, resp.Alternates, 1) // two qualified fighters, one left over

	sum := 0.0
	for _, v := range resp.Profile {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestMatchRejectsUnknownQuestion(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/match", map[string]interface{}{
		"answers": []map[string]interface{}{
			{"questionId": "favorite-color", "optionIndex": 0},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchRejectsEmptyAnswers(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, "POST", "/api/match", map[string]interface{}{"answers": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchUpstreamDown(t *testing.T) {
	f := newFixture(t)
	f.upstream.err = fmt.Errorf("%w: status 500", upstream.ErrUnavailable)

	w := f.do(t, "POST", "/api/match", matchRequest())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNotFoundIsJSON(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, "GET", "/api/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}
