package quizgen

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrCorrectOptionMissing means the question's correct label does not
	// key any of its options.
	ErrCorrectOptionMissing = errors.New("correct label not present in options")

	// ErrCorrectOptionLost means the correct text could not be located
	// again after shuffling. With unique option texts this cannot happen;
	// it is surfaced explicitly rather than letting an empty label
	// propagate into storage.
	ErrCorrectOptionLost = errors.New("correct option lost during shuffle")
)

// ShuffleOptions returns a copy of q with its options uniformly permuted
// and re-labeled against the canonical alphabet. The correct label is
// recomputed by exact text match, so the binding between correct label
// and correct text survives the permutation.
//
// rng may be nil, in which case the shared math/rand source is used.
func ShuffleOptions(rng *rand.Rand, q Question) (Question, error) {
	correctText, ok := q.OptionText(q.CorrectLabel)
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrCorrectOptionMissing, q.CorrectLabel)
	}

	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)

	// Fisher-Yates: every permutation of n options is equally likely.
	for i := len(opts) - 1; i > 0; i-- {
		j := intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}

	newCorrect := ""
	for i := range opts {
		opts[i].Label = OptionLabels[i]
		if opts[i].Text == correctText && newCorrect == "" {
			newCorrect = opts[i].Label
		}
	}
	if newCorrect == "" {
		return Question{}, ErrCorrectOptionLost
	}

	return Question{
		Prompt:       q.Prompt,
		Options:      opts,
		CorrectLabel: newCorrect,
	}, nil
}
