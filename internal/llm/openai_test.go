package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testSchema() map[string]any {
	return map[string]any{"type": "object"}
}

func newTestClient(url string) *Client {
	return NewClient("test-key", "gpt-4o-mini", WithEndpoint(url))
}

func TestGenerate_ExtractsOutputTextBlock(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{
			"output": [
				{"type": "reasoning", "content": []},
				{"type": "message", "content": [
					{"type": "refusal", "text": ""},
					{"type": "output_text", "text": "{\"summary\":\"ok\"}"}
				]}
			]
		}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Generate(context.Background(), Request{
		Instructions: "system",
		Input:        "user",
		SchemaName:   "architecture_analysis",
		Schema:       testSchema(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != `{"summary":"ok"}` {
		t.Errorf("Generate() = %q", text)
	}

	// The wire request must ask for strict schema output, low temperature,
	// a small output ceiling, and no provider-side persistence.
	if received["store"] != false {
		t.Errorf("store = %v, want false", received["store"])
	}
	if received["temperature"].(float64) > 0.5 {
		t.Errorf("temperature = %v, want low", received["temperature"])
	}
	if received["max_output_tokens"].(float64) != 900 {
		t.Errorf("max_output_tokens = %v, want 900", received["max_output_tokens"])
	}
	format := received["text"].(map[string]any)["format"].(map[string]any)
	if format["type"] != "json_schema" || format["strict"] != true {
		t.Errorf("text.format = %v, want strict json_schema", format)
	}
	if format["name"] != "architecture_analysis" {
		t.Errorf("text.format.name = %v", format["name"])
	}
}

func TestGenerate_FallsBackToTopLevelOutputText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": [], "output_text": "{\"summary\":\"fallback\"}"}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Generate(context.Background(), Request{Schema: testSchema()})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != `{"summary":"fallback"}` {
		t.Errorf("Generate() = %q", text)
	}
}

func TestGenerate_NoOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": [{"type": "reasoning", "content": []}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), Request{Schema: testSchema()})
	if !errors.Is(err, ErrNoOutput) {
		t.Errorf("Generate() error = %v, want ErrNoOutput", err)
	}
}

func TestGenerate_UpstreamErrorMessageForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Rate limit reached for requests", "type": "rate_limit_error"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), Request{Schema: testSchema()})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Generate() error = %v (%T), want *UpstreamError", err, err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, http.StatusTooManyRequests)
	}
	if upstream.Message != "Rate limit reached for requests" {
		t.Errorf("Message = %q, want the provider's own diagnostic", upstream.Message)
	}
}

func TestGenerate_UpstreamErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), Request{Schema: testSchema()})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Generate() error = %v (%T), want *UpstreamError", err, err)
	}
	if upstream.Message != "request failed (502)" {
		t.Errorf("Message = %q, want %q", upstream.Message, "request failed (502)")
	}
}
