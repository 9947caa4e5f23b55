package events

import "time"

const (
	SubjectResultRecorded = "quiz.result.recorded"
	SubjectRosterRefresh  = "quiz.roster.refreshed"

	StreamName   = "FIGHTMATCH_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

// ResultRecordedEvent is published after a quiz outcome is tallied.
type ResultRecordedEvent struct {
	EventID      string    `json:"event_id"`
	FighterSlug  string    `json:"fighter_slug"`
	FighterName  string    `json:"fighter_name"`
	TotalQuizzes int       `json:"total_quizzes"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// RosterRefreshedEvent is published when the roster cache is repopulated
// from upstream.
type RosterRefreshedEvent struct {
	EventID   string    `json:"event_id"`
	BodyBytes int       `json:"body_bytes"`
	FetchedAt time.Time `json:"fetched_at"`
}
