// Package stats owns the quiz outcome counters: one persistent record in
// the key/value store, read-modified-written as a unit. Increments are
// serialized per process by a mutex; with multiple replicas a concurrent
// write can lose an increment on the JSON blob, which is accepted for a
// popularity tally.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aristotle-me/fightmatch/internal/store"
)

const (
	statsKey    = "quiz_stats"
	maxSlugLen  = 100
	maxNameLen  = 100
	topListSize = 10
)

// ErrInvalidSlug means the fighter slug was empty after sanitization.
var ErrInvalidSlug = errors.New("invalid fighter slug")

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9-]`)
)

// SanitizeSlug case-folds, collapses whitespace runs to single hyphens,
// discards every character outside [a-z0-9-], and caps the result at 100
// characters. Disallowed characters are dropped, not replaced.
func SanitizeSlug(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}

// snapshot is the persisted counter record. JSON keys match the stored
// layout: {totalQuizzes, fighterCounts, fighterNames, lastUpdated}.
type snapshot struct {
	TotalQuizzes  int               `json:"totalQuizzes"`
	FighterCounts map[string]int    `json:"fighterCounts"`
	FighterNames  map[string]string `json:"fighterNames"`
	LastUpdated   *time.Time        `json:"lastUpdated"`
}

func emptySnapshot() snapshot {
	return snapshot{
		FighterCounts: make(map[string]int),
		FighterNames:  make(map[string]string),
	}
}

// RecordResult reports the counters after one recorded quiz.
type RecordResult struct {
	TotalQuizzes int `json:"totalQuizzes"`
	FighterCount int `json:"fighterCount"`
}

// TopFighter is one entry of the global leaderboard.
type TopFighter struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// GlobalStats is the public view of all recorded quiz outcomes.
type GlobalStats struct {
	TotalQuizzes int          `json:"totalQuizzes"`
	TopFighters  []TopFighter `json:"topFighters"`
	LastUpdated  *time.Time   `json:"lastUpdated"`
}

// FighterStats is the public view of one fighter's recorded outcomes.
// Rank is 1-based and nil when the fighter has no recorded results.
type FighterStats struct {
	FighterSlug   string `json:"fighterSlug"`
	FighterName   string `json:"fighterName"`
	Count         int    `json:"count"`
	Percentage    string `json:"percentage"`
	Rank          *int   `json:"rank"`
	TotalFighters int    `json:"totalFighters"`
	TotalQuizzes  int    `json:"totalQuizzes"`
}

// Service reads and writes the counter record.
type Service struct {
	store store.Store
	mu    sync.Mutex
	now   func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

func (s *Service) load(ctx context.Context) (snapshot, error) {
	data, err := s.store.Get(ctx, statsKey)
	if errors.Is(err, store.ErrNotFound) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return snapshot{}, fmt.Errorf("load stats: %w", err)
	}
	snap := emptySnapshot()
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot{}, fmt.Errorf("decode stats: %w", err)
	}
	if snap.FighterCounts == nil {
		snap.FighterCounts = make(map[string]int)
	}
	if snap.FighterNames == nil {
		snap.FighterNames = make(map[string]string)
	}
	return snap, nil
}

func (s *Service) save(ctx context.Context, snap snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := s.store.Put(ctx, statsKey, data, 0); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// Record tallies one quiz outcome. The slug is sanitized here; an empty
// post-sanitization slug yields ErrInvalidSlug.
func (s *Service) Record(ctx context.Context, rawSlug, fighterName string) (*RecordResult, error) {
	slug := SanitizeSlug(rawSlug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	name := strings.TrimSpace(fighterName)
	if name == "" {
		name = slug
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	snap.TotalQuizzes++
	snap.FighterCounts[slug]++
	snap.FighterNames[slug] = name
	now := s.now().UTC()
	snap.LastUpdated = &now

	if err := s.save(ctx, snap); err != nil {
		return nil, err
	}
	return &RecordResult{
		TotalQuizzes: snap.TotalQuizzes,
		FighterCount: snap.FighterCounts[slug],
	}, nil
}

// ranked returns all recorded slugs sorted by count descending, slug
// ascending for stable ties.
func ranked(counts map[string]int) []string {
	slugs := make([]string, 0, len(counts))
	for slug := range counts {
		slugs = append(slugs, slug)
	}
	sort.Slice(slugs, func(i, j int) bool {
		if counts[slugs[i]] != counts[slugs[j]] {
			return counts[slugs[i]] > counts[slugs[j]]
		}
		return slugs[i] < slugs[j]
	})
	return slugs
}

func percentage(count, total int) string {
	if total <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(count)/float64(total)*100)
}

// Global returns the total quiz count and the top fighters by count.
func (s *Service) Global(ctx context.Context) (*GlobalStats, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	top := make([]TopFighter, 0, topListSize)
	for _, slug := range ranked(snap.FighterCounts) {
		if len(top) == topListSize {
			break
		}
		name := snap.FighterNames[slug]
		if name == "" {
			name = slug
		}
		top = append(top, TopFighter{
			Slug:       slug,
			Name:       name,
			Count:      snap.FighterCounts[slug],
			Percentage: percentage(snap.FighterCounts[slug], snap.TotalQuizzes),
		})
	}

	return &GlobalStats{
		TotalQuizzes: snap.TotalQuizzes,
		TopFighters:  top,
		LastUpdated:  snap.LastUpdated,
	}, nil
}

// Fighter returns one fighter's count, share, and rank.
func (s *Service) Fighter(ctx context.Context, rawSlug string) (*FighterStats, error) {
	slug := SanitizeSlug(rawSlug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	count := snap.FighterCounts[slug]
	out := &FighterStats{
		FighterSlug:   slug,
		FighterName:   snap.FighterNames[slug],
		Count:         count,
		Percentage:    percentage(count, snap.TotalQuizzes),
		TotalFighters: len(snap.FighterCounts),
		TotalQuizzes:  snap.TotalQuizzes,
	}
	if out.FighterName == "" {
		out.FighterName = slug
	}
	if count > 0 {
		for i, candidate := range ranked(snap.FighterCounts) {
			if candidate == slug {
				rank := i + 1
				out.Rank = &rank
				break
			}
		}
	}
	return out, nil
}
