package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error returns a Response that passes err to the configured ErrorHandler
// instead of writing anything itself.
func Error(err error) Response {
	return errorResponse{err: err}
}
