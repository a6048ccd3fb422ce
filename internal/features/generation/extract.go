package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/plategenie/server/pkg/errors"
)

// ExtractCandidates turns a raw model response into the filtered
// candidate list. The model is not contractually guaranteed to emit
// pure JSON, so extraction is deliberately lenient: strip code fences,
// slice from the first '[' (or the start if there is none) to the last
// ']', and parse whatever is in between. The filter afterwards is the
// real correctness boundary; anything malformed degrades to a smaller
// list, and only an unparsable payload is an error.
//
// An empty surviving list is a valid result, not a failure.
func ExtractCandidates(raw string) ([]Candidate, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	if start < 0 {
		start = 0
	}
	end := strings.LastIndex(cleaned, "]") + 1
	if end > len(cleaned) {
		end = len(cleaned)
	}
	if end < start {
		return nil, fmt.Errorf("%w: no JSON array found", apperrors.ErrUpstreamFormat)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned[start:end]), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFormat, err)
	}

	candidates := []Candidate{}
	for _, element := range elements {
		var c Candidate
		if err := json.Unmarshal(element, &c); err != nil {
			// Wrong-typed fields (e.g. a numeric cookingTime) drop the
			// element, not the whole response.
			continue
		}
		if c.Valid() {
			candidates = append(candidates, c)
		}
	}

	return candidates, nil
}
