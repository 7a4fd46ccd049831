// Package quizgen turns raw generative-model output into validated,
// shuffled multiple-choice questions ready for persistence.
package quizgen

import (
	"encoding/json"
	"fmt"
	"sort"
)

// OptionLabels is the canonical ordered label alphabet. Every stored
// question keys its options by exactly these labels.
var OptionLabels = [...]string{"A", "B", "C", "D"}

// Option is a single labeled answer choice.
type Option struct {
	Label string
	Text  string
}

// Question is one multiple-choice item. Options are held as an ordered
// list of (label, text) pairs so that shuffling and re-labeling are
// deterministic regardless of the wire shape they arrived in.
type Question struct {
	Prompt       string
	Options      []Option
	CorrectLabel string
}

// Payload is the container recovered from generation output.
type Payload struct {
	Questions []Question `json:"questions"`
}

// OptionText returns the text bound to the given label.
func (q Question) OptionText(label string) (string, bool) {
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt.Text, true
		}
	}
	return "", false
}

// questionWire mirrors the JSON shape produced by the generation prompt
// and served by the API. Options may arrive either as an object keyed by
// label or as a plain array (legacy shape); both are normalized here.
type questionWire struct {
	Prompt        string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
}

// UnmarshalJSON normalizes both accepted wire shapes into the canonical
// ordered pair list.
func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	opts, err := normalizeOptions(w.Options)
	if err != nil {
		return err
	}

	q.Prompt = w.Prompt
	q.Options = opts
	q.CorrectLabel = w.CorrectAnswer
	return nil
}

// MarshalJSON emits the API wire shape: an options object keyed by label,
// in label order.
func (q Question) MarshalJSON() ([]byte, error) {
	obj := make(map[string]string, len(q.Options))
	for _, opt := range q.Options {
		obj[opt.Label] = opt.Text
	}
	return json.Marshal(struct {
		Prompt        string            `json:"question"`
		Options       map[string]string `json:"options"`
		CorrectAnswer string            `json:"correctAnswer"`
	}{
		Prompt:        q.Prompt,
		Options:       obj,
		CorrectAnswer: q.CorrectLabel,
	})
}

// normalizeOptions converts either wire shape of the options field into
// ordered (label, text) pairs. Object keys are taken in sorted order so
// the canonical A..D labels keep their positions; array elements are
// zipped against the canonical alphabet.
func normalizeOptions(raw json.RawMessage) ([]Option, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var byLabel map[string]string
	if err := json.Unmarshal(raw, &byLabel); err == nil {
		labels := make([]string, 0, len(byLabel))
		for label := range byLabel {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		opts := make([]Option, 0, len(labels))
		for _, label := range labels {
			opts = append(opts, Option{Label: label, Text: byLabel[label]})
		}
		return opts, nil
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		if len(asList) > len(OptionLabels) {
			return nil, fmt.Errorf("too many options: %d", len(asList))
		}
		opts := make([]Option, 0, len(asList))
		for i, text := range asList {
			opts = append(opts, Option{Label: OptionLabels[i], Text: text})
		}
		return opts, nil
	}

	return nil, fmt.Errorf("options must be an object keyed by label or an array of strings")
}
