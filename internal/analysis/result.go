package analysis

import "encoding/json"

// Result is the verdict returned to the caller. Field bounds are enforced
// upstream via the response schema (see resultSchema) and re-coerced here so
// the response shape is always well-formed even if the provider misbehaves.
type Result struct {
	Summary     string   `json:"summary"`
	Patterns    []string `json:"patterns"`
	Strengths   []string `json:"strengths"`
	Risk        string   `json:"risk"`
	Improvement string   `json:"improvement"`
}

// parseResult decodes the text extracted from the provider envelope into a
// normalized Result. The provider was asked for strict schema output, but
// that is treated as a hint, not a guarantee.
func parseResult(text string) (*Result, error) {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &Error{Kind: KindUpstream, Message: "model returned non-JSON output"}
	}
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return nil, &Error{Kind: KindUpstream, Message: "model returned invalid output"}
	}
	return normalizeResult(obj), nil
}

// normalizeResult applies per-field defaults unconditionally: strings become
// "" and arrays become empty slices when absent or wrongly typed.
func normalizeResult(obj map[string]any) *Result {
	return &Result{
		Summary:     asString(obj["summary"]),
		Patterns:    asStringSlice(obj["patterns"]),
		Strengths:   asStringSlice(obj["strengths"]),
		Risk:        asString(obj["risk"]),
		Improvement: asString(obj["improvement"]),
	}
}

// resultSchema is the JSON Schema sent with every generation request. All
// five fields are required and no additional properties are permitted.
func resultSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"summary", "patterns", "strengths", "risk", "improvement"},
		"properties": map[string]any{
			"summary": map[string]any{
				"type":      "string",
				"minLength": 1,
				"maxLength": 700,
			},
			"patterns": map[string]any{
				"type":     "array",
				"minItems": 0,
				"maxItems": 10,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
					"maxLength": 80,
				},
			},
			"strengths": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 3,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
					"maxLength": 140,
				},
			},
			"risk": map[string]any{
				"type":      "string",
				"minLength": 1,
				"maxLength": 220,
			},
			"improvement": map[string]any{
				"type":      "string",
				"minLength": 1,
				"maxLength": 220,
			},
		},
	}
}
