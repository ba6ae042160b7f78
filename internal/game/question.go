package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/stadtaev/sixdegrees/internal/metrics"
)

// Question is one round: a seed, the correct answer at hop distance 1, two
// wrong answers from farther buckets, the shuffled display order, and the
// evidence connecting seed and answer. Once accepted it is immutable and
// appended verbatim to the session history.
type Question struct {
	Seed         string          `json:"seed"`
	Answer       string          `json:"answer"`
	WrongAnswers []string        `json:"wrongAnswers"`
	Options      []string        `json:"options"`
	Evidence     json.RawMessage `json:"evidence,omitempty"`
}

// nextQuestion tries candidate seeds until a full question can be built.
// Each failed attempt denylists the seed, so the pool strictly shrinks and
// the loop is bounded by the pool size at entry. A nil question with a nil
// error means the session is out of usable seeds.
func nextQuestion(ctx context.Context, svc GraphService, s *Session, logger *slog.Logger) (*Question, error) {
	for tries := s.Pool.Len(); tries >= 0; tries-- {
		seed := chooseSeed(s)
		if seed == "" {
			return nil, nil
		}

		q, ok, err := buildQuestion(ctx, svc, s, seed)
		if err != nil {
			return nil, err
		}
		if ok {
			return q, nil
		}

		// Seed was unusable. Deny it and move on to the next one.
		logger.Debug("rejecting seed", "seed", seed, "remaining", s.Pool.Len()-1)
		metrics.SeedRejections.Inc()
		s.Pool.Deny(seed)
	}
	return nil, nil
}

// chooseSeed applies the session's variant. The first question of a game
// always samples from the top of the pool since there is no history yet.
func chooseSeed(s *Session) string {
	if !s.Variant.seedsFromAnswer() || len(s.History) == 0 {
		return s.Pool.SampleSeed(s.FirstFewMax)
	}

	seed := s.History[len(s.History)-1].Answer
	if !s.Pool.isDenylisted(seed) {
		return seed
	}
	if s.Variant == SeedFromAnswerOrAny {
		return s.Pool.SampleSeed(s.FirstFewMax)
	}
	return ""
}

// buildQuestion assembles one question around seed. ok=false means the
// seed cannot support a question and should be denied; an error is only
// returned for failures that no other seed would fix.
func buildQuestion(ctx context.Context, svc GraphService, s *Session, seed string) (*Question, bool, error) {
	buckets, err := svc.DistancesFrom(ctx, seed)
	if err != nil {
		// A failed distance lookup makes this seed unusable, but if the
		// context is gone every other seed would fail the same way.
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("%w: distances from %q: %v", ErrUpstream, seed, err)
		}
		return nil, false, nil
	}

	// Need buckets 0..3 at minimum: seed, answer, and room for two wrong
	// answers at distance >= 2.
	if len(buckets) < 4 {
		return nil, false, nil
	}

	direct := s.Pool.FilterEligible(buckets[1].Entities)
	if len(direct) == 0 {
		return nil, false, nil
	}
	answer := pickFromFirstFew(direct, s.FirstFewMax)

	wrong1 := pickWrongAnswer(s, buckets, s.DistanceOfWrong1, "")
	if wrong1 == "" {
		return nil, false, nil
	}
	wrong2 := pickWrongAnswer(s, buckets, s.DistanceOfWrong2, wrong1)
	if wrong2 == "" {
		return nil, false, nil
	}

	options := []string{wrong1, wrong2, answer}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	// Unlike a distance lookup, a failed evidence fetch says nothing about
	// the seed: the question was fully assembled. Propagate instead of
	// burning the seed, so a flaky evidence endpoint cannot drain the pool
	// and end the game.
	evidence, err := svc.EvidenceBetween(ctx, seed, answer)
	if err != nil {
		return nil, false, fmt.Errorf("%w: evidence between %q and %q: %v", ErrUpstream, seed, answer, err)
	}

	return &Question{
		Seed:         seed,
		Answer:       answer,
		WrongAnswers: []string{wrong1, wrong2},
		Options:      options,
		Evidence:     evidence,
	}, true, nil
}

// pickWrongAnswer scans hop distances from 1+distance down to 2 and picks
// from the first non-empty eligible bucket. Preferring the farthest
// configured distance makes the wrong answer harder to rule out by
// intuition, while the fallback keeps a sparse bucket from sinking the
// whole seed. exclude drops an already-picked wrong answer.
func pickWrongAnswer(s *Session, buckets []DistanceBucket, distance int, exclude string) string {
	for w := 1 + distance; w > 1; w-- {
		if w >= len(buckets) {
			continue
		}
		eligible := s.Pool.FilterEligible(buckets[w].Entities)
		if exclude != "" {
			eligible = without(eligible, exclude)
		}
		if len(eligible) > 0 {
			return pickFromFirstFew(eligible, s.FirstFewMax)
		}
	}
	return ""
}

func without(names []string, drop string) []string {
	var out []string
	for _, n := range names {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}

func pickFromFirstFew(items []string, max int) string {
	if len(items) == 0 {
		return ""
	}
	return items[rand.Intn(min(max, len(items)))]
}
