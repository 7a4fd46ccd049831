package quizgen

import (
	"encoding/json"
	"strings"
)

// MalformedOutputError reports generation output from which no usable
// JSON payload could be recovered. Raw carries the offending text for
// diagnostics; it is logged, never sent to clients.
type MalformedOutputError struct {
	Reason string
	Raw    string
}

func (e *MalformedOutputError) Error() string {
	return "unparseable generation output: " + e.Reason
}

// ExtractPayload recovers a question payload from raw model output.
// Generation APIs return prose- or fence-wrapped JSON often enough that
// all slicing lives here, in one place, instead of at every call site.
//
// The first opening bracket picks the JSON family (array preferred over
// object) and the last closing bracket of the same family ends the
// slice. A bare array is wrapped into a Payload; an object must carry a
// "questions" array. Every failure comes back as *MalformedOutputError.
func ExtractPayload(raw string) (*Payload, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return nil, &MalformedOutputError{Reason: "empty output", Raw: raw}
	}

	open, closing := "{", "}"
	if strings.Contains(cleaned, "[") {
		open, closing = "[", "]"
	}

	start := strings.Index(cleaned, open)
	end := strings.LastIndex(cleaned, closing)
	if start == -1 || end == -1 || end < start {
		return nil, &MalformedOutputError{Reason: "no JSON value found", Raw: raw}
	}
	cleaned = cleaned[start : end+1]

	if open == "[" {
		var questions []Question
		if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
			return nil, &MalformedOutputError{Reason: err.Error(), Raw: raw}
		}
		return &Payload{Questions: questions}, nil
	}

	var payload struct {
		Questions *[]Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &MalformedOutputError{Reason: err.Error(), Raw: raw}
	}
	if payload.Questions == nil {
		return nil, &MalformedOutputError{Reason: "missing questions array", Raw: raw}
	}
	return &Payload{Questions: *payload.Questions}, nil
}
