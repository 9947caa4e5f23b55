package fighters

import (
	"regexp"
	"strings"
	"time"
)

// Fighter is one roster entry from the upstream statistics API. Field names
// follow the upstream JSON; statistical fields missing upstream decode to 0.
type Fighter struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`

	// Continuous stats: strikes landed/absorbed per minute, strike accuracy,
	// takedown/submission averages, strike/takedown defense rates.
	SLpM   float64 `json:"slpm"`
	StrAcc float64 `json:"str_acc"`
	TDAvg  float64 `json:"td_avg"`
	SubAvg float64 `json:"sub_avg"`
	StrDef float64 `json:"str_def"`
	TDDef  float64 `json:"td_def"`
	SApM   float64 `json:"sapm"`

	IsChampion bool `json:"is_champion"`

	// Fights is ordered most recent first.
	Fights []Fight `json:"fights,omitempty"`
}

// Fight is one past bout outcome.
type Fight struct {
	Result    string `json:"result"`
	Method    string `json:"method"`
	EventDate string `json:"event_date,omitempty"`
}

// Qualified reports whether the fighter meets the candidacy thresholds.
func (f *Fighter) Qualified() bool {
	return f.Name != "" && f.Wins >= 3 && f.Wins+f.Losses >= 5
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug derives the URL-safe identifier from a display name: case-folded
// with whitespace runs collapsed to a single hyphen.
func Slug(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// dateLayouts covers the formats the upstream API has emitted for
// event_date over time.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
}

func parseEventDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
