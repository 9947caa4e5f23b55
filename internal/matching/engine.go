package matching

import (
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/aristotle-me/fightmatch/internal/fighters"
	"github.com/aristotle-me/fightmatch/internal/quiz"
)

// ErrNoCandidates means the roster was empty or nothing scored above zero.
// Callers must treat this as a terminal, user-visible failure.
var ErrNoCandidates = errors.New("no candidate fighters to match against")

// varietyPoolSize caps the ranked result set; the primary is drawn from the
// leading drawPoolSize entries.
const (
	varietyPoolSize = 8
	drawPoolSize    = 5
)

// drawWeights bias the primary pick toward better matches while keeping
// repeat runs varied.
var drawWeights = [drawPoolSize]float64{28, 24, 20, 16, 12}

// RandSource supplies uniform reals in [0,1). *rand.Rand satisfies it;
// tests inject fixed sequences.
type RandSource interface {
	Float64() float64
}

// Candidate is one scored roster entry inside a match result.
type Candidate struct {
	Fighter    fighters.Fighter      `json:"fighter"`
	Score      float64               `json:"score"`
	Style      fighters.StyleProfile `json:"style"`
	StarPower  float64               `json:"star_power"`
	Rank       int                   `json:"rank"`
	Percentage int                   `json:"percentage"`
}

// Result is one matching invocation's outcome: the weighted-random primary
// at 100% and up to two alternates expressed relative to it. An alternate
// can exceed 100% when its raw score beats the drawn primary's.
type Result struct {
	Primary    Candidate   `json:"primary"`
	Alternates []Candidate `json:"alternates"`
}

// Engine scores a qualified roster against a trait profile and selects a
// presentable result set with controlled randomness. Safe for concurrent
// use; the random source is serialized internally.
type Engine struct {
	mu     sync.Mutex
	rng    RandSource
	logger *slog.Logger
}

func NewEngine(rng RandSource, logger *slog.Logger) *Engine {
	return &Engine{rng: rng, logger: logger}
}

func (e *Engine) random() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

// Match ranks the roster against the profile and draws a primary result.
// Repeated calls with identical inputs are not required to agree; the ±10%
// jitter and the weighted draw are intentional.
func (e *Engine) Match(profile quiz.Profile, roster []fighters.Fighter, now time.Time) (*Result, error) {
	if len(roster) == 0 {
		return nil, ErrNoCandidates
	}

	scored := make([]Candidate, 0, len(roster))
	for i := range roster {
		f := roster[i]
		style := fighters.AnalyzeStyle(&f, now)
		star := StarPower(f.Name)
		score := baseScore(profile, &f, style, star)
		score *= 0.9 + 0.2*e.random()
		if score <= 0 {
			continue
		}
		scored = append(scored, Candidate{
			Fighter:   f,
			Score:     score,
			Style:     style,
			StarPower: star,
		})
	}
	if len(scored) == 0 {
		return nil, ErrNoCandidates
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	pool := scored
	if len(pool) > varietyPoolSize {
		pool = pool[:varietyPoolSize]
	}
	maxScore := pool[0].Score
	for i := range pool {
		pool[i].Rank = i + 1
		pool[i].Percentage = int(math.Round(pool[i].Score / maxScore * 100))
	}

	available := len(pool)
	if available > drawPoolSize {
		available = drawPoolSize
	}
	idx := e.pickWeighted(available)

	primary := pool[idx]
	primary.Percentage = 100

	alternates := make([]Candidate, 0, 2)
	for i := 0; i < available && len(alternates) < 2; i++ {
		if i == idx {
			continue
		}
		alt := pool[i]
		alt.Percentage = int(math.Round(alt.Score / primary.Score * 100))
		alternates = append(alternates, alt)
	}

	if e.logger != nil {
		e.logger.Debug("match selected",
			"primary", primary.Fighter.Name,
			"drawn_rank", idx+1,
			"pool_size", len(pool),
			"score", primary.Score,
		)
	}

	return &Result{Primary: primary, Alternates: alternates}, nil
}

// pickWeighted draws an index from the leading n pool slots via a
// categorical draw over drawWeights, renormalized when n < 5.
func (e *Engine) pickWeighted(n int) int {
	var total float64
	for i := 0; i < n; i++ {
		total += drawWeights[i]
	}
	r := e.random() * total
	for i := 0; i < n; i++ {
		r -= drawWeights[i]
		if r <= 0 {
			return i
		}
	}
	return 0
}

// baseScore is the additive pre-jitter score for one candidate. The
// constants are tuned values; changing any of them shifts who surfaces for
// every profile, so they stay exactly as calibrated.
func baseScore(profile quiz.Profile, f *fighters.Fighter, style fighters.StyleProfile, star float64) float64 {
	striking := profile.Weight(quiz.TraitStriking)
	grappling := profile.Weight(quiz.TraitGrappling)
	aggression := profile.Weight(quiz.TraitAggression)
	defense := profile.Weight(quiz.TraitDefense)
	cardio := profile.Weight(quiz.TraitCardio)
	finish := profile.Weight(quiz.TraitFinish)

	var score float64

	// Striking vs grappling fit.
	strikingRating := (f.SLpM/6)*0.5 + f.StrAcc*0.5
	grapplingRating := (f.TDAvg/4)*0.4 + (f.SubAvg/2)*0.6
	score += striking * strikingRating * 100
	score += grappling * grapplingRating * 100

	// Aggression vs defense fit. Absent strike defense reads as neutral 0.5
	// in the aggression term only.
	strDef := f.StrDef
	if strDef == 0 {
		strDef = 0.5
	}
	aggressionRating := (f.SLpM/6)*0.5 + (f.SApM/5)*0.3 + (1-strDef)*0.2
	defenseRating := f.StrDef*0.4 + f.TDDef*0.4 + (1-math.Min(f.SApM/5, 1))*0.2
	score += aggression * aggressionRating * 80
	score += defense * defenseRating * 80

	// Cardio / volume fit.
	score += cardio * math.Min(f.SLpM/5, 1) * 50

	// Finish-seeking bonus, only for profiles that care about finishes.
	if finish > 0.1 {
		score += finish * style.FinishRatio * 70
		if striking > grappling {
			score += style.KORatio * 30
		} else {
			score += style.SubRatio * 30
		}
	}

	// Recognizability bonuses, flat rather than weight-scaled.
	score += star
	if f.IsChampion {
		score += 40
	}
	score += math.Min(float64(f.Wins), 20) * 1.2
	score += float64(f.Wins) / math.Max(float64(f.Wins+f.Losses), 1) * 15
	if style.Active {
		score += 20
	}
	if f.SLpM == 0 && f.TDAvg == 0 {
		// No usable statistics, likely long-retired.
		score -= 80
	}
	score += math.Min(float64(style.TotalFights), 15) * 0.3

	return score
}
