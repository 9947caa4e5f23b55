package fighters

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestAnalyzeStyleBuckets(t *testing.T) {
	f := &Fighter{
		Name: "Test Fighter",
		Fights: []Fight{
			{Result: "win", Method: "KO/TKO Punch"},
			{Result: "win", Method: "Submission (Rear Naked Choke)"},
			{Result: "win", Method: "Decision - Unanimous"},
			{Result: "win", Method: "TKO Doctor Stoppage"},
			{Result: "loss", Method: "KO"},
		},
	}

	s := AnalyzeStyle(f, now)
	if s.KORatio != 0.5 {
		t.Errorf("ko ratio = %f, expected 0.5", s.KORatio)
	}
	if s.SubRatio != 0.25 {
		t.Errorf("sub ratio = %f, expected 0.25", s.SubRatio)
	}
	if s.DecRatio != 0.25 {
		t.Errorf("dec ratio = %f, expected 0.25", s.DecRatio)
	}
	if s.FinishRatio != 0.75 {
		t.Errorf("finish ratio = %f, expected 0.75", s.FinishRatio)
	}
	if s.TotalFights != 5 {
		t.Errorf("total fights = %d, expected 5", s.TotalFights)
	}
}

func TestAnalyzeStyleKeywordPrecedence(t *testing.T) {
	// A method matching both keyword sets classifies as knockout.
	f := &Fighter{
		Fights: []Fight{
			{Result: "win", Method: "TKO (tapout to strikes)"},
		},
	}
	s := AnalyzeStyle(f, now)
	if s.KORatio != 1.0 {
		t.Errorf("ko ratio = %f, expected 1.0 (KO keywords win)", s.KORatio)
	}
	if s.SubRatio != 0 {
		t.Errorf("sub ratio = %f, expected 0", s.SubRatio)
	}
}

func TestAnalyzeStyleMethodCaseInsensitive(t *testing.T) {
	f := &Fighter{
		Fights: []Fight{
			{Result: "win", Method: "knockout"},
			{Result: "win", Method: "guillotine choke"},
		},
	}
	s := AnalyzeStyle(f, now)
	if s.KORatio != 0.5 || s.SubRatio != 0.5 {
		t.Errorf("ratios = %f/%f, expected 0.5/0.5", s.KORatio, s.SubRatio)
	}
}

func TestAnalyzeStyleZeroWins(t *testing.T) {
	f := &Fighter{
		Fights: []Fight{
			{Result: "loss", Method: "KO"},
			{Result: "loss", Method: "Submission"},
		},
	}
	s := AnalyzeStyle(f, now)
	if s.KORatio != 0 || s.SubRatio != 0 || s.DecRatio != 0 || s.FinishRatio != 0 {
		t.Errorf("expected all ratios 0 for zero wins, got %+v", s)
	}
}

func TestAnalyzeStyleActive(t *testing.T) {
	tests := []struct {
		name   string
		fights []Fight
		want   bool
	}{
		{"no fights", nil, false},
		{"recent fight", []Fight{{Result: "win", Method: "KO", EventDate: "2024-10-12"}}, true},
		{"old fight", []Fight{{Result: "win", Method: "KO", EventDate: "2019-01-01"}}, false},
		{"missing date", []Fight{{Result: "win", Method: "KO"}}, false},
		{"garbage date", []Fight{{Result: "win", Method: "KO", EventDate: "sometime"}}, false},
		{"exactly two years ago", []Fight{{Result: "win", Method: "KO", EventDate: "2023-06-01"}}, false},
		{"just inside two years", []Fight{{Result: "win", Method: "KO", EventDate: "2023-06-02"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fighter{Fights: tt.fights}
			if got := AnalyzeStyle(f, now).Active; got != tt.want {
				t.Errorf("active = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestQualified(t *testing.T) {
	tests := []struct {
		name    string
		fighter Fighter
		want    bool
	}{
		{"qualified", Fighter{Name: "A", Wins: 10, Losses: 2}, true},
		{"exactly at thresholds", Fighter{Name: "B", Wins: 3, Losses: 2}, true},
		{"too few wins", Fighter{Name: "C", Wins: 2, Losses: 5}, false},
		{"too few fights", Fighter{Name: "D", Wins: 4, Losses: 0}, false},
		{"no name", Fighter{Wins: 10, Losses: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fighter.Qualified(); got != tt.want {
				t.Errorf("Qualified() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Conor McGregor", "conor-mcgregor"},
		{"  Jon  Jones ", "jon-jones"},
		{"Khabib", "khabib"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
