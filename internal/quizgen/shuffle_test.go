package quizgen

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourOptions(texts ...string) []Option {
	opts := make([]Option, len(texts))
	for i, text := range texts {
		opts[i] = Option{Label: OptionLabels[i], Text: text}
	}
	return opts
}

func TestShuffleOptions_PreservesOptionSet(t *testing.T) {
	q := Question{
		Prompt:       "Which gas do plants absorb?",
		Options:      fourOptions("CO2", "O2", "N2", "H2"),
		CorrectLabel: "A",
	}

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))

		shuffled, err := ShuffleOptions(rng, q)
		require.NoError(t, err)

		before := optionTexts(q)
		after := optionTexts(shuffled)
		sort.Strings(before)
		sort.Strings(after)
		assert.Equal(t, before, after, "seed %d changed the option set", seed)
	}
}

func TestShuffleOptions_PreservesCorrectnessBinding(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 1000; trial++ {
		texts := make([]string, 4)
		for i := range texts {
			texts[i] = fmt.Sprintf("option-%d-%d", trial, i)
		}
		correctIdx := rng.Intn(4)

		q := Question{
			Prompt:       "trial question",
			Options:      fourOptions(texts...),
			CorrectLabel: OptionLabels[correctIdx],
		}

		shuffled, err := ShuffleOptions(rng, q)
		require.NoError(t, err)

		got, ok := shuffled.OptionText(shuffled.CorrectLabel)
		require.True(t, ok)
		assert.Equal(t, texts[correctIdx], got)
	}
}

func TestShuffleOptions_Uniform(t *testing.T) {
	q := Question{
		Prompt:       "uniformity probe",
		Options:      fourOptions("w", "x", "y", "z"),
		CorrectLabel: "A",
	}

	const trials = 24000
	rng := rand.New(rand.NewSource(7))
	counts := make(map[string]int, 24)

	for i := 0; i < trials; i++ {
		shuffled, err := ShuffleOptions(rng, q)
		require.NoError(t, err)
		counts[strings.Join(optionTexts(shuffled), "")]++
	}

	require.Len(t, counts, 24, "all 4! permutations should appear")

	// Loose chi-square check against uniform: 23 degrees of freedom,
	// 99.9th percentile is ~49.7.
	expected := float64(trials) / 24
	chi := 0.0
	for _, n := range counts {
		diff := float64(n) - expected
		chi += diff * diff / expected
	}
	assert.Less(t, chi, 49.7, "permutation distribution is not uniform (chi-square %.2f)", chi)
}

func TestShuffleOptions_DoesNotMutateInput(t *testing.T) {
	q := Question{
		Prompt:       "immutability probe",
		Options:      fourOptions("1", "2", "3", "4"),
		CorrectLabel: "B",
	}

	_, err := ShuffleOptions(rand.New(rand.NewSource(1)), q)
	require.NoError(t, err)

	assert.Equal(t, fourOptions("1", "2", "3", "4"), q.Options)
	assert.Equal(t, "B", q.CorrectLabel)
}

func TestShuffleOptions_CorrectLabelMissing(t *testing.T) {
	q := Question{
		Prompt:       "broken",
		Options:      fourOptions("1", "2", "3", "4"),
		CorrectLabel: "E",
	}

	_, err := ShuffleOptions(nil, q)
	assert.ErrorIs(t, err, ErrCorrectOptionMissing)
}

func optionTexts(q Question) []string {
	texts := make([]string, len(q.Options))
	for i, opt := range q.Options {
		texts[i] = opt.Text
	}
	return texts
}
