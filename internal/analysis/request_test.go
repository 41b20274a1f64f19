package analysis

import (
	"strings"
	"testing"
)

func TestParseRequest_EmptyBody(t *testing.T) {
	_, err := ParseRequest(nil)
	assertAnalysisError(t, err, KindInvalidInput, "content is required")

	_, err = ParseRequest([]byte("   "))
	assertAnalysisError(t, err, KindInvalidInput, "content is required")

	// Empty body is an empty object, not a JSON error.
	_, err = ParseRequest([]byte("{}"))
	assertAnalysisError(t, err, KindInvalidInput, "content is required")
}

func TestParseRequest_InvalidJSON(t *testing.T) {
	_, err := ParseRequest([]byte("not json"))
	assertAnalysisError(t, err, KindInvalidInput, "Invalid JSON body")

	// Valid JSON that is not an object is equally malformed for this API.
	_, err = ParseRequest([]byte(`[1,2,3]`))
	assertAnalysisError(t, err, KindInvalidInput, "Invalid JSON body")
}

func TestParseRequest_ContentTrimmedAndRequired(t *testing.T) {
	_, err := ParseRequest([]byte(`{"content":"  \n\t "}`))
	assertAnalysisError(t, err, KindInvalidInput, "content is required")

	// Non-string content coerces to "" rather than erroring.
	_, err = ParseRequest([]byte(`{"content":42}`))
	assertAnalysisError(t, err, KindInvalidInput, "content is required")
}

func TestParseRequest_TooLarge(t *testing.T) {
	content := strings.Repeat("a", MaxContentChars+1)
	_, err := ParseRequest([]byte(`{"content":"` + content + `"}`))
	assertAnalysisError(t, err, KindContentTooLarge, "content too large")

	// Exactly at the bound is accepted.
	content = strings.Repeat("a", MaxContentChars)
	req, err := ParseRequest([]byte(`{"content":"` + content + `"}`))
	if err != nil {
		t.Fatalf("ParseRequest() at bound: unexpected error %v", err)
	}
	if len(req.Content) != MaxContentChars {
		t.Errorf("Content length = %d, want %d", len(req.Content), MaxContentChars)
	}
}

func TestParseRequest_MultibyteLengthCountsRunes(t *testing.T) {
	// 9000 three-byte runes are within the limit even though the byte
	// count is far above it.
	content := strings.Repeat("あ", MaxContentChars)
	_, err := ParseRequest([]byte(`{"content":"` + content + `"}`))
	if err != nil {
		t.Fatalf("ParseRequest() multibyte at bound: unexpected error %v", err)
	}
}

func TestParseRequest_KindHandling(t *testing.T) {
	req, err := ParseRequest([]byte(`{"type":"tree","content":"just prose"}`))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Kind != KindTree {
		t.Errorf("declared kind ignored: got %q, want %q", req.Kind, KindTree)
	}

	// Unknown declared kinds fall back to detection.
	req, err = ParseRequest([]byte(`{"type":"banana","content":"a plain sentence"}`))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Kind != KindDescription {
		t.Errorf("fallback kind = %q, want %q", req.Kind, KindDescription)
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Kind
	}{
		{"prose", "A small service with three workers", KindDescription},
		{"path separator", "src/api", KindTree},
		{"windows separator", `src\api`, KindTree},
		{"tree glyphs", "├── cmd", KindTree},
		{"line break", "first line\nsecond line", KindTree},
		{"indented listing", "src/\n  api/\n  lib/", KindTree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKind(tt.content); got != tt.want {
				t.Errorf("DetectKind(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func assertAnalysisError(t *testing.T, err error, kind ErrorKind, message string) {
	t.Helper()
	ae, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %v (%T), want *analysis.Error", err, err)
	}
	if ae.Kind != kind {
		t.Errorf("Kind = %d, want %d", ae.Kind, kind)
	}
	if ae.Message != message {
		t.Errorf("Message = %q, want %q", ae.Message, message)
	}
}
