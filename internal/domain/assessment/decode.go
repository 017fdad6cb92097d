package assessment

import (
	"encoding/json"
	"strings"
)

// DecodeModelOutput turns the model's free-form reply into something
// Normalize can consume. The model is asked for bare JSON but often
// wraps it in prose; in that case the widest brace-delimited span is
// tried on its own. When nothing decodes, the verbatim text is kept
// under raw_output so it survives as notes.
func DecodeModelOutput(text string) any {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var span any
		if err := json.Unmarshal([]byte(text[start:end+1]), &span); err == nil {
			return span
		}
	}

	return map[string]any{"raw_output": text}
}
