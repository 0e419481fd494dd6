package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when the backend produced no text
var ErrEmptyResponse = errors.New("empty response")

// rawResult mirrors Result with pointers so missing fields are detectable
type rawResult struct {
	Word                *string    `json:"word"`
	Definition          *string    `json:"definition"`
	Examples            *[]Example `json:"examples"`
	FriendlyExplanation *string    `json:"friendlyExplanation"`
}

// ParseResult decodes and validates a lookup response. The four required
// fields must be present and word must be non-blank; examples are padded.
func ParseResult(data string) (*Result, error) {
	data = stripCodeFence(strings.TrimSpace(data))
	if data == "" {
		return nil, ErrEmptyResponse
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("malformed lookup JSON: %w", err)
	}

	var missing []string
	if raw.Word == nil || strings.TrimSpace(*raw.Word) == "" {
		missing = append(missing, "word")
	}
	if raw.Definition == nil {
		missing = append(missing, "definition")
	}
	if raw.Examples == nil {
		missing = append(missing, "examples")
	}
	if raw.FriendlyExplanation == nil {
		missing = append(missing, "friendlyExplanation")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("lookup response missing fields: %s", strings.Join(missing, ", "))
	}

	r := &Result{
		Word:                *raw.Word,
		Definition:          *raw.Definition,
		Examples:            append([]Example(nil), (*raw.Examples)...),
		FriendlyExplanation: *raw.FriendlyExplanation,
	}
	Normalize(r)
	return r, nil
}

// stripCodeFence removes a ```json fence some models wrap around JSON
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
