package handler

import "net/http"

type noContent struct{}

func (noContent) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Empty responds 204 No Content.
func Empty() Response { return noContent{} }
