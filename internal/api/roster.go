package api

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aristotle-me/fightmatch/internal/events"
	"github.com/aristotle-me/fightmatch/internal/fighters"
	"github.com/aristotle-me/fightmatch/internal/store"
	"github.com/aristotle-me/fightmatch/internal/upstream"
)

const rosterCacheKey = "fighters_cache"

// RosterSource serves roster bodies through a shared store-backed cache.
// The cache key is deliberately query-independent: every caller sees the
// same full-roster snapshot and the upstream is hit at most once per TTL.
type RosterSource struct {
	store    store.Store
	upstream upstream.Client
	events   events.Publisher
	ttl      time.Duration
	limit    int
	logger   *slog.Logger
}

func NewRosterSource(s store.Store, u upstream.Client, p events.Publisher, ttl time.Duration, limit int, logger *slog.Logger) *RosterSource {
	if limit <= 0 {
		limit = 10000
	}
	return &RosterSource{store: s, upstream: u, events: p, ttl: ttl, limit: limit, logger: logger}
}

// Raw returns the roster response body and whether it came from cache.
// rawQuery is forwarded upstream on a miss; the cache key stays the same
// for every query so all callers share one snapshot.
func (rs *RosterSource) Raw(ctx context.Context, rawQuery string) ([]byte, bool, error) {
	body, err := rs.store.Get(ctx, rosterCacheKey)
	if err == nil {
		rosterCacheTotal.WithLabelValues("hit").Inc()
		return body, true, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		rs.logger.Warn("roster cache read failed", "error", err)
	}
	rosterCacheTotal.WithLabelValues("miss").Inc()

	if rawQuery == "" {
		rawQuery = "limit=" + strconv.Itoa(rs.limit)
	}
	body, err = rs.upstream.Fighters(ctx, rawQuery)
	if err != nil {
		upstreamErrorsTotal.Inc()
		return nil, false, err
	}

	// Repopulate off the request path.
	go func(b []byte) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.store.Put(ctx, rosterCacheKey, b, rs.ttl); err != nil {
			rs.logger.Warn("roster cache write failed", "error", err)
			return
		}
		if rs.events != nil {
			_ = rs.events.Publish(events.SubjectRosterRefresh, events.RosterRefreshedEvent{
				EventID:   uuid.NewString(),
				BodyBytes: len(b),
				FetchedAt: time.Now().UTC(),
			})
		}
	}(body)

	return body, false, nil
}

// Qualified returns the decoded roster filtered to fighters with enough
// history to be matchable.
func (rs *RosterSource) Qualified(ctx context.Context) ([]fighters.Fighter, error) {
	body, _, err := rs.Raw(ctx, "")
	if err != nil {
		return nil, err
	}
	roster, err := upstream.DecodeRoster(body)
	if err != nil {
		return nil, err
	}
	out := roster[:0]
	for i := range roster {
		if roster[i].Qualified() {
			out = append(out, roster[i])
		}
	}
	return out, nil
}
