package analysis

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// MaxContentChars is the hard limit on analyzable input, counted in runes.
// Clients are expected to enforce the same bound before calling.
const MaxContentChars = 9000

// Kind labels the structural shape of the input text. It steers the prompt
// only; it is never trusted as a correctness-critical field.
type Kind string

const (
	KindTree        Kind = "tree"
	KindDescription Kind = "description"
)

// Request is a validated, normalized analysis request. It lives for one
// request/response cycle and is never persisted.
type Request struct {
	Kind    Kind   `json:"type"`
	Content string `json:"content"`
}

// ParseRequest reads an inbound JSON body and produces a normalized Request.
// An empty body is treated as an empty object. All rejections are *Error
// values with a caller-facing message.
func ParseRequest(body []byte) (*Request, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, &Error{Kind: KindInvalidInput, Message: "Invalid JSON body"}
		}
	}

	content := strings.TrimSpace(asString(raw["content"]))
	if content == "" {
		return nil, &Error{Kind: KindInvalidInput, Message: "content is required"}
	}
	if utf8.RuneCountInString(content) > MaxContentChars {
		return nil, &Error{Kind: KindContentTooLarge, Message: "content too large"}
	}

	kind := Kind(asString(raw["type"]))
	if kind != KindTree && kind != KindDescription {
		kind = DetectKind(content)
	}
	return &Request{Kind: kind, Content: content}, nil
}

// treeGlyphs are the box-drawing connectors commonly produced by `tree`.
const treeGlyphs = "│├└─"

// DetectKind classifies input as a directory-tree listing or prose. It is a
// best-effort structural heuristic: path separators, tree-drawing glyphs, or
// indented continuation lines all read as a tree.
func DetectKind(content string) Kind {
	lines := strings.Split(content, "\n")
	if len(lines) > 1 {
		return KindTree
	}
	for _, line := range lines {
		if strings.ContainsAny(line, "/\\") {
			return KindTree
		}
		if strings.ContainsAny(line, treeGlyphs) {
			return KindTree
		}
	}
	return KindDescription
}

// asString coerces a decoded JSON value to a string, defaulting to "" for
// anything that is not one.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asStringSlice coerces a decoded JSON value to a slice of strings, dropping
// non-string elements. The result is never nil so it encodes as [].
func asStringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
