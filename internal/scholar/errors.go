// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed action for user-facing messaging.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindTransport  ErrorKind = "transport"
	KindHTTPStatus ErrorKind = "http_status"
	KindAPI        ErrorKind = "api"
	KindValidation ErrorKind = "validation"
	KindDecode     ErrorKind = "decode"
	KindUnknown    ErrorKind = "unknown"
)

// TransportError reports a failure to reach the provider: DNS, connection
// refused, TLS, timeout or cancellation.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("connecting to Semantic Scholar: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Semantic Scholar API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("Semantic Scholar API returned HTTP %d: %s", e.StatusCode, e.Body)
}

// APIError reports an error field inside a 2xx response body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "API returned an error: " + e.Message
}

// ValidationError reports a request rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DecodeError reports a 2xx body that is not the JSON the provider documents.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsing Semantic Scholar response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind returns the ErrorKind of err, looking through wrapping.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var (
		te *TransportError
		he *HTTPStatusError
		ae *APIError
		ve *ValidationError
		de *DecodeError
	)
	switch {
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &te):
		return KindTransport
	case errors.As(err, &he):
		return KindHTTPStatus
	case errors.As(err, &ae):
		return KindAPI
	case errors.As(err, &de):
		return KindDecode
	default:
		return KindUnknown
	}
}

// UserMessage renders err as the message shown to the person who triggered
// the action. Connectivity failures get a generic message; status errors
// carry the code; provider errors carry the provider's text.
func UserMessage(err error) string {
	var (
		he *HTTPStatusError
		ae *APIError
		ve *ValidationError
	)
	switch Kind(err) {
	case KindNone:
		return ""
	case KindTransport:
		return "Could not connect to the Semantic Scholar API. Check your internet connection and try again."
	case KindHTTPStatus:
		errors.As(err, &he)
		if he.StatusCode == 429 {
			return "The Semantic Scholar API returned HTTP 429 (rate limited). Wait a moment before trying again."
		}
		return fmt.Sprintf("The Semantic Scholar API returned HTTP %d.", he.StatusCode)
	case KindAPI:
		errors.As(err, &ae)
		return "The Semantic Scholar API reported an error: " + ae.Message
	case KindValidation:
		errors.As(err, &ve)
		return ve.Error()
	case KindDecode:
		return "The Semantic Scholar API returned a response that could not be read."
	default:
		return "An unexpected error occurred: " + err.Error()
	}
}
