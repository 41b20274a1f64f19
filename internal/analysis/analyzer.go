// Package analysis implements the architecture-analysis pipeline: request
// validation and normalization, prompt construction, structured generation
// against the upstream provider, and defensive normalization of its output.
//
// The pipeline is stateless. Each call owns its Request and Result for the
// duration of one request/response cycle and shares nothing across calls.
package analysis

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rivecs/rivecs.github.io/internal/llm"
)

// Generator is the upstream structured-generation provider. It returns the
// raw text extracted from the provider envelope.
type Generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// Analyzer runs the analysis pipeline. A nil or empty credential is detected
// per request so the caller gets a configuration error instead of a failed
// upstream call.
type Analyzer struct {
	gen    Generator
	apiKey string
}

// New creates an Analyzer backed by the given generator.
func New(gen Generator, apiKey string) *Analyzer {
	return &Analyzer{gen: gen, apiKey: apiKey}
}

// Analyze validates the raw request body, calls the provider once (no
// retries), and returns a normalized Result. Every failure is an *Error
// carrying a caller-safe message.
func (a *Analyzer) Analyze(ctx context.Context, body []byte) (*Result, error) {
	if a.apiKey == "" {
		return nil, &Error{Kind: KindConfig, Message: "Missing OPENAI_API_KEY env var"}
	}

	req, err := ParseRequest(body)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	start := time.Now()
	log.Info().
		Str("analysis_id", id).
		Str("kind", string(req.Kind)).
		Int("content_chars", len(req.Content)).
		Msg("analysis requested")

	text, err := a.gen.Generate(ctx, llm.Request{
		Instructions: systemPrompt,
		Input:        buildUserMessage(req.Kind, req.Content),
		SchemaName:   "architecture_analysis",
		Schema:       resultSchema(),
	})
	if err != nil {
		mapped := mapGenerateError(err)
		log.Warn().
			Str("analysis_id", id).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("analysis failed upstream")
		return nil, mapped
	}

	result, err := parseResult(text)
	if err != nil {
		log.Warn().Str("analysis_id", id).Err(err).Msg("provider output rejected")
		return nil, err
	}

	log.Info().
		Str("analysis_id", id).
		Dur("duration", time.Since(start)).
		Msg("analysis completed")
	return result, nil
}

// mapGenerateError folds provider-call failures into the error taxonomy:
// provider-reported failures and missing output are upstream errors, call
// deadline overruns are timeouts, everything else is internal.
func mapGenerateError(err error) *Error {
	var upstream *llm.UpstreamError
	switch {
	case errors.As(err, &upstream):
		return &Error{Kind: KindUpstream, Message: upstream.Message}
	case errors.Is(err, llm.ErrNoOutput):
		return &Error{Kind: KindUpstream, Message: "model returned no output"}
	case isTimeout(err):
		return &Error{Kind: KindUpstreamTimeout, Message: "upstream request timed out"}
	default:
		return &Error{Kind: KindInternal, Message: err.Error()}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
