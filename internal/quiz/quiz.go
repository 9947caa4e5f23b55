package quiz

// Trait is one personality dimension measured by the quiz.
type Trait string

const (
	TraitStriking   Trait = "striking"
	TraitGrappling  Trait = "grappling"
	TraitAggression Trait = "aggression"
	TraitDefense    Trait = "defense"
	TraitCardio     Trait = "cardio"
	TraitFinish     Trait = "finish"
)

// Traits lists every known trait in a stable order.
var Traits = []Trait{
	TraitStriking, TraitGrappling, TraitAggression,
	TraitDefense, TraitCardio, TraitFinish,
}

// Answer is one selected quiz option. Deltas are sparse: traits an option
// does not mention are simply absent.
type Answer struct {
	QuestionID  string            `json:"question_id"`
	OptionIndex int               `json:"option_index"`
	Deltas      map[Trait]float64 `json:"deltas"`
}

// Profile maps every trait to its normalized weight. Weights sum to 1
// unless all accumulated values were zero, in which case all weights are 0.
type Profile map[Trait]float64

// Aggregate folds a completed quiz into a normalized trait profile.
func Aggregate(answers []Answer) Profile {
	acc := make(map[Trait]float64, len(Traits))
	for _, t := range Traits {
		acc[t] = 0
	}
	var total float64
	for _, a := range answers {
		for trait, delta := range a.Deltas {
			acc[trait] += delta
			total += delta
		}
	}

	profile := make(Profile, len(Traits))
	for _, t := range Traits {
		if total == 0 {
			profile[t] = 0
			continue
		}
		profile[t] = acc[t] / total
	}
	return profile
}

// Weight returns the profile's weight for a trait, 0 when absent.
func (p Profile) Weight(t Trait) float64 {
	return p[t]
}
