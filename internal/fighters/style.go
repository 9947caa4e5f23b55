package fighters

import (
	"strings"
	"time"
)

// StyleProfile is derived from a fighter's fight history at evaluation time.
// Ratios are computed over wins only.
type StyleProfile struct {
	KORatio     float64 `json:"ko_ratio"`
	SubRatio    float64 `json:"sub_ratio"`
	DecRatio    float64 `json:"dec_ratio"`
	FinishRatio float64 `json:"finish_ratio"`
	Active      bool    `json:"active"`
	TotalFights int     `json:"total_fights"`
}

var (
	koKeywords  = []string{"KO", "TKO", "KNOCK"}
	subKeywords = []string{"SUB", "CHOKE", "LOCK", "TAP"}
)

func containsAny(method string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(method, kw) {
			return true
		}
	}
	return false
}

// AnalyzeStyle buckets the fighter's wins by finish method and flags recent
// activity. Knockout keywords take precedence over submission keywords when
// a method string matches both.
func AnalyzeStyle(f *Fighter, now time.Time) StyleProfile {
	var koWins, subWins, decWins, totalWins int
	for _, fight := range f.Fights {
		if !strings.EqualFold(fight.Result, "win") {
			continue
		}
		totalWins++
		method := strings.ToUpper(fight.Method)
		switch {
		case containsAny(method, koKeywords):
			koWins++
		case containsAny(method, subKeywords):
			subWins++
		default:
			decWins++
		}
	}

	denom := float64(totalWins)
	if denom < 1 {
		denom = 1
	}

	active := false
	if len(f.Fights) > 0 {
		if last, ok := parseEventDate(f.Fights[0].EventDate); ok {
			active = last.After(now.AddDate(-2, 0, 0))
		}
	}

	return StyleProfile{
		KORatio:     float64(koWins) / denom,
		SubRatio:    float64(subWins) / denom,
		DecRatio:    float64(decWins) / denom,
		FinishRatio: float64(koWins+subWins) / denom,
		Active:      active,
		TotalFights: len(f.Fights),
	}
}
