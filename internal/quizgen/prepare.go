package quizgen

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidPayload means a recovered payload does not satisfy the
// question shape contract and cannot be assembled into a quiz.
var ErrInvalidPayload = errors.New("invalid quiz payload")

// PrepareQuestions validates a recovered question set and shuffles the
// options of every question, preserving question order. It returns new
// values; the input is not modified.
//
// Duplicate option texts within one question are rejected outright:
// the post-shuffle correct label is recovered by text equality, which
// is ambiguous when two options read the same.
func PrepareQuestions(rng *rand.Rand, questions []Question) ([]Question, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidPayload)
	}

	prepared := make([]Question, 0, len(questions))
	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidPayload, i+1, err)
		}

		shuffled, err := ShuffleOptions(rng, q)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		prepared = append(prepared, shuffled)
	}
	return prepared, nil
}

func validateQuestion(q Question) error {
	if q.Prompt == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) != len(OptionLabels) {
		return fmt.Errorf("expected %d options, got %d", len(OptionLabels), len(q.Options))
	}

	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		if opt.Label != OptionLabels[i] {
			return fmt.Errorf("unexpected option label %q at position %d", opt.Label, i)
		}
		if opt.Text == "" {
			return fmt.Errorf("option %s has empty text", opt.Label)
		}
		if seen[opt.Text] {
			return fmt.Errorf("duplicate option text %q", opt.Text)
		}
		seen[opt.Text] = true
	}

	if _, ok := q.OptionText(q.CorrectLabel); !ok {
		return fmt.Errorf("correct answer %q is not an option label", q.CorrectLabel)
	}
	return nil
}
