package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/binder"
	"github.com/dmitrymomot/tenantkit/handler"
)

type echoRequest struct {
	Name string `json:"name"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req echoRequest) handler.Response {
		if req.Name == "" {
			v := handler.NewValidationError()
			v.Add("name", "required")
			return handler.JSONError(v)
		}
		return handler.JSON(map[string]string{"hello": req.Name}, handler.WithJSONStatus(http.StatusCreated))
	}
	h := handler.Wrap(echo, handler.WithBinders[echoRequest](binder.JSON(0)))

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"acme"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "acme", decode(t, rec)["hello"])
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "validation_error", body["error"])
		assert.Equal(t, map[string]any{"name": []any{"required"}}, body["details"])
	})

	t.Run("binding error goes to error handler", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decode(t, rec)["error"])
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		var got error
		nilHandler := handler.Wrap(
			func(handler.Context, struct{}) handler.Response { return nil },
			handler.WithErrorHandler[struct{}](func(_ handler.Context, err error) { got = err }),
		)
		nilHandler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()

		var order []string
		mark := func(name string) handler.Decorator[struct{}] {
			return func(next handler.HandlerFunc[struct{}]) handler.HandlerFunc[struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(
			func(handler.Context, struct{}) handler.Response { return handler.Empty() },
			handler.WithDecorators(mark("outer"), mark("inner")),
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"outer", "inner"}, order)
	})
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	status, body := handler.ErrorResponse(handler.ErrForbidden.WithMessage("company %d is not accessible", 42))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", body.Error)
	assert.Equal(t, "company 42 is not accessible", body.Message)

	status, body = handler.ErrorResponse(handler.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body.Message)

	wrapped := errors.Join(errors.New("ctx"), handler.NewHTTPError(http.StatusBadRequest, "cross_tenant", "wrong tenant"))
	status, body = handler.ErrorResponse(wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "cross_tenant", body.Error)

	status, body = handler.ErrorResponse(errors.New("pq: password authentication failed"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body.Message, "pq")
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		key    string
		level  string
	}{
		{"http error", handler.ErrForbidden, http.StatusForbidden, "forbidden", "WARN"},
		{"bad json", binder.ErrInvalidJSON, http.StatusBadRequest, "bad_request", "WARN"},
		{"body too large", binder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "request_entity_too_large", "WARN"},
		{"wrong media type", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type", "WARN"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_server_error", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			eh := handler.NewErrorHandler(slog.New(slog.NewJSONHandler(buf, nil)))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			eh(handler.NewContext(rec, req), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.key, decode(t, rec)["error"])

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "/login", entry["path"])
			assert.Equal(t, "error_handler", entry["component"])
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	v := handler.NewValidationError()
	assert.True(t, v.IsEmpty())
	assert.NoError(t, v.OrNil())
	assert.Equal(t, "validation failed", v.Error())

	v.Add("password", "required")
	v.Add("identifier", "required")
	assert.True(t, v.Has("password"))
	assert.False(t, v.Has("email"))
	assert.Equal(t, "validation error: identifier: required, password: required", v.Error())
	assert.Error(t, v.OrNil())
}

func TestError(t *testing.T) {
	t.Parallel()

	var handled error
	h := handler.Wrap(
		func(handler.Context, struct{}) handler.Response {
			return handler.Error(handler.ErrForbidden.WithMessage("nope"))
		},
		handler.WithErrorHandler[struct{}](func(ctx handler.Context, err error) {
			handled = err
			handler.WriteError(ctx.ResponseWriter(), err)
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Error(t, handled)
	assert.ErrorIs(t, handled, handler.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "nope", decode(t, rec)["message"])
}
