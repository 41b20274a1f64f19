package analysis

import "net/http"

// ErrorKind classifies pipeline failures so the HTTP layer can map each one
// to a distinct status code.
type ErrorKind int

const (
	// KindInvalidInput covers malformed JSON bodies and missing content.
	KindInvalidInput ErrorKind = iota
	// KindContentTooLarge is reported when content exceeds MaxContentChars.
	KindContentTooLarge
	// KindConfig is a server misconfiguration, never the caller's fault.
	KindConfig
	// KindUpstream covers provider failures and malformed provider output.
	KindUpstream
	// KindUpstreamTimeout is reported when the provider call exceeds its ceiling.
	KindUpstreamTimeout
	// KindInternal is any other unexpected failure.
	KindInternal
)

// Error is the single error type crossing the pipeline boundary. Message is
// safe to return to the caller verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindContentTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUpstream:
		return http.StatusBadGateway
	case KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
