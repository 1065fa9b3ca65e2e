package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	return WriteJSON(w, j.status, j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// JSON renders v with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as an ErrorBody with the status derived by ErrorResponse.
// It bypasses the error handler; use Error to have the failure logged.
func JSONError(err error, opts ...JSONOption) Response {
	status, body := ErrorResponse(err)
	r := &jsonResponse{status: status, body: body}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrorResponse classifies err. HTTPError keeps its code, ValidationError maps
// to 422, anything else is a 500 with a generic message.
func ErrorResponse(err error) (int, ErrorBody) {
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return http.StatusUnprocessableEntity, ErrorBody{
			Error:   "validation_error",
			Message: "request validation failed",
			Details: maps.Clone(map[string][]string(valErr)),
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorBody{Error: httpErr.Key, Message: msg}
	}

	return http.StatusInternalServerError, ErrorBody{
		Error:   ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

// WriteJSON encodes v with the given status. Middleware that has no handler
// Context uses it directly.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a JSON error body.
func WriteError(w http.ResponseWriter, err error) {
	status, body := ErrorResponse(err)
	_ = WriteJSON(w, status, body)
}
