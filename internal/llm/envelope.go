package llm

import "errors"

// ErrNoOutput is returned when the envelope holds no generated text at all.
var ErrNoOutput = errors.New("no output text in response")

// envelope is the provider's full response wrapper: an ordered sequence of
// output items, each possibly containing content blocks. Exactly one block is
// expected to carry the generated text.
type envelope struct {
	Output     []outputItem `json:"output"`
	OutputText string       `json:"output_text"`
	Error      *apiError    `json:"error"`
}

type outputItem struct {
	Type    string         `json:"type"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// extractText scans the output items in order for the first block whose type
// marks it as generated text, falling back to the top-level output_text
// convenience field. Both absent is an upstream-shape error.
func (e *envelope) extractText() (string, error) {
	for _, item := range e.Output {
		for _, block := range item.Content {
			if block.Type == "output_text" && block.Text != "" {
				return block.Text, nil
			}
		}
	}
	if e.OutputText != "" {
		return e.OutputText, nil
	}
	return "", ErrNoOutput
}
