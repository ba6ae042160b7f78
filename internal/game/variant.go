package game

import "fmt"

// Variant selects how the seed for each question is chosen.
type Variant string

const (
	// AnySeed always samples a seed from the top few pool candidates.
	AnySeed Variant = "any_seed"
	// AnySeedKillAnswer samples like AnySeed and additionally denylists
	// the correct answer of every accepted question.
	AnySeedKillAnswer Variant = "any_seed_kill_answer"
	// SeedFromAnswer uses the previous question's correct answer as the
	// next seed; if that name is denylisted the game ends.
	SeedFromAnswer Variant = "seed_from_answer"
	// SeedFromAnswerOrAny is SeedFromAnswer with a fallback to sampling
	// when the previous answer is no longer eligible.
	SeedFromAnswerOrAny Variant = "seed_from_answer_or_any"
)

// DefaultVariant is used when no variant is configured.
const DefaultVariant = AnySeedKillAnswer

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case AnySeed, AnySeedKillAnswer, SeedFromAnswer, SeedFromAnswerOrAny:
		return Variant(s), nil
	case "":
		return DefaultVariant, nil
	}
	return "", fmt.Errorf("unrecognised game variant %q", s)
}

func (v Variant) killsAnswer() bool { return v == AnySeedKillAnswer }

func (v Variant) seedsFromAnswer() bool {
	return v == SeedFromAnswer || v == SeedFromAnswerOrAny
}
