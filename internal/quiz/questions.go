package quiz

import "fmt"

// Option is one selectable quiz answer and its trait contribution.
type Option struct {
	Text   string            `json:"text"`
	Deltas map[Trait]float64 `json:"deltas"`
}

// Question is one quiz question with its fixed options.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Questions is the quiz catalog. Option deltas are the tuned values the
// matching engine's weights were calibrated against; do not rebalance them
// independently of the engine constants.
var Questions = []Question{
	{
		ID:       "approach",
		Question: "You're in a street fight. What's your move?",
		Options: []Option{
			{Text: "Stand and bang", Deltas: map[Trait]float64{TraitStriking: 3, TraitGrappling: 0, TraitAggression: 3}},
			{Text: "Take them down immediately", Deltas: map[Trait]float64{TraitStriking: 0, TraitGrappling: 3, TraitAggression: 2}},
			{Text: "Feel them out, pick my shots", Deltas: map[Trait]float64{TraitStriking: 2, TraitGrappling: 1, TraitAggression: 0}},
			{Text: "Clinch and control", Deltas: map[Trait]float64{TraitStriking: 1, TraitGrappling: 2, TraitAggression: 1}},
		},
	},
	{
		ID:       "cardio",
		Question: "How do you handle pressure?",
		Options: []Option{
			{Text: "I thrive in chaos", Deltas: map[Trait]float64{TraitAggression: 3, TraitDefense: 0, TraitCardio: 2}},
			{Text: "Stay calm, stick to the plan", Deltas: map[Trait]float64{TraitAggression: 0, TraitDefense: 3, TraitCardio: 2}},
			{Text: "Push the pace, make them break", Deltas: map[Trait]float64{TraitAggression: 2, TraitDefense: 1, TraitCardio: 3}},
			{Text: "Weather the storm, then attack", Deltas: map[Trait]float64{TraitAggression: 1, TraitDefense: 2, TraitCardio: 1}},
		},
	},
	{
		ID:       "finish",
		Question: "How do you want to win?",
		Options: []Option{
			{Text: "Knockout, highlight reel", Deltas: map[Trait]float64{TraitStriking: 3, TraitGrappling: 0, TraitFinish: 3}},
			{Text: "Submission, make them tap", Deltas: map[Trait]float64{TraitStriking: 0, TraitGrappling: 3, TraitFinish: 3}},
			{Text: "Dominant decision, 30-27", Deltas: map[Trait]float64{TraitStriking: 1, TraitGrappling: 1, TraitFinish: 0}},
			{Text: "Ground and pound until the ref stops it", Deltas: map[Trait]float64{TraitStriking: 2, TraitGrappling: 2, TraitFinish: 2}},
		},
	},
	{
		ID:       "style",
		Question: "Pick your vibe:",
		Options: []Option{
			{Text: "Explosive power, one shot changes everything", Deltas: map[Trait]float64{TraitStriking: 3, TraitAggression: 2, TraitDefense: 0}},
			{Text: "Technical wizard, always three steps ahead", Deltas: map[Trait]float64{TraitStriking: 2, TraitDefense: 3, TraitCardio: 1}},
			{Text: "Relentless pressure, a nightmare to fight", Deltas: map[Trait]float64{TraitGrappling: 2, TraitAggression: 3, TraitCardio: 3}},
			{Text: "Well-rounded, dangerous everywhere", Deltas: map[Trait]float64{TraitStriking: 2, TraitGrappling: 2, TraitDefense: 2}},
		},
	},
	{
		ID:       "mental",
		Question: "Your opponent talks trash before the fight. You:",
		Options: []Option{
			{Text: "Talk back louder", Deltas: map[Trait]float64{TraitAggression: 3, TraitStriking: 1}},
			{Text: "Let your hands do the talking", Deltas: map[Trait]float64{TraitStriking: 2, TraitDefense: 1}},
			{Text: "Smile and wave, then dominate", Deltas: map[Trait]float64{TraitGrappling: 2, TraitDefense: 2}},
			{Text: "Use it as fuel, stay focused", Deltas: map[Trait]float64{TraitCardio: 2, TraitAggression: 1}},
		},
	},
}

// Resolve maps a (question, option index) selection to the Answer it
// contributes, validating against the catalog.
func Resolve(questionID string, optionIndex int) (Answer, error) {
	for _, q := range Questions {
		if q.ID != questionID {
			continue
		}
		if optionIndex < 0 || optionIndex >= len(q.Options) {
			return Answer{}, fmt.Errorf("question %q has no option %d", questionID, optionIndex)
		}
		return Answer{
			QuestionID:  questionID,
			OptionIndex: optionIndex,
			Deltas:      q.Options[optionIndex].Deltas,
		}, nil
	}
	return Answer{}, fmt.Errorf("unknown question %q", questionID)
}
