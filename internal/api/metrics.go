package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizzesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fightmatch_quizzes_recorded_total",
		Help: "Quiz outcomes recorded via the stats endpoint.",
	})

	matchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fightmatch_matches_total",
		Help: "Successful match computations.",
	})

	rosterCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fightmatch_roster_cache_total",
		Help: "Roster cache lookups by outcome.",
	}, []string{"result"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fightmatch_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})

	upstreamErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fightmatch_upstream_errors_total",
		Help: "Failed fetches from the fighter-statistics API.",
	})
)
