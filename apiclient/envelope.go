package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/nuur-client/internal/errors"
)

// APIError is the error object the backend places in an envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Envelope is the uniform {success, data, error} response wrapper. A 2xx
// response with Success false is an application failure, distinct from an
// *HTTPError.
type Envelope[T any] struct {
	Success bool      `json:"success"`
	Data    *T        `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// Err returns the application error carried by a failed envelope, or nil.
func (e *Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	if e.Error != nil {
		return e.Error
	}
	return &APIError{Message: "request was not successful"}
}

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	API        *APIError // decoded backend error, when the body carried one
	Body       []byte
}

func (e *HTTPError) Error() string {
	msg := http.StatusText(e.StatusCode)
	if e.API != nil && e.API.Message != "" {
		msg = e.API.Message
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, msg)
}

// Unwrap maps well-known statuses onto the package sentinels so callers can
// use errors.Is(err, errors.ErrUnauthorized).
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.ErrInvalidRequest
	}
	return nil
}

func newHTTPError(resp *http.Response, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.Redacted(),
		API:        decodeAPIError(resp.StatusCode, body),
		Body:       body,
	}
}

// decodeAPIError accepts both the envelope error shape and the framework
// default {"detail": "..."}.
func decodeAPIError(status int, body []byte) *APIError {
	var probe struct {
		Error  *APIError       `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &probe) != nil {
		return nil
	}
	if probe.Error != nil {
		return probe.Error
	}
	if len(probe.Detail) == 0 {
		return nil
	}
	var msg string
	if err := json.Unmarshal(probe.Detail, &msg); err == nil {
		return &APIError{Code: status, Message: msg}
	}
	var details any
	_ = json.Unmarshal(probe.Detail, &details)
	return &APIError{Code: status, Message: http.StatusText(status), Details: details}
}

func isEnvelope(body []byte) bool {
	var probe struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return probe.Success != nil
}

// decodeEnvelope reads a 2xx body. Bodies that are not wrapped in an envelope
// are treated as the data of a successful one; an empty body is a success
// with no data.
func decodeEnvelope[T any](body []byte) (*Envelope[T], error) {
	env := &Envelope[T]{}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		env.Success = true
		return env, nil
	}
	if isEnvelope(trimmed) {
		if err := json.Unmarshal(trimmed, env); err != nil {
			return nil, errors.Wrapf(err, "decode envelope")
		}
		return env, nil
	}
	var data T
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return nil, errors.Wrapf(err, "decode response")
	}
	env.Success = true
	env.Data = &data
	return env, nil
}
