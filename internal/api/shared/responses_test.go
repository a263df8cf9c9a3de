package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listkeep/listkeep-api/internal/api/shared"
)

func TestRespondWithJSON(t *testing.T) {
	t.Run("writes status and body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)

		shared.RespondWithJSON(rr, r, http.StatusCreated, map[string]string{"name": "groceries"})

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "groceries", body["name"])
	})

	t.Run("nil data writes no body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/test", nil)

		shared.RespondWithJSON(rr, r, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func TestRespondWithError(t *testing.T) {
	t.Run("includes message, kind, and trace id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)
		r = r.WithContext(shared.SetTraceID(r.Context()))

		shared.RespondWithError(rr, r, http.StatusNotFound, "List not found",
			shared.WithKind("not_found"))

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "not_found", resp.Kind)
		assert.Equal(t, "List not found", resp.Error)
		assert.Len(t, resp.TraceID, shared.TraceIDLength*2)
	})

	t.Run("omits trace id when none is set", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)

		shared.RespondWithError(rr, r, http.StatusBadRequest, "Invalid request format")

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Empty(t, resp.TraceID)
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Run("the underlying error never reaches the client", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)
		err := errors.New("dial tcp: connection refused to mongodb://admin:hunter2@db:27017")

		shared.RespondWithErrorAndLog(rr, r, http.StatusInternalServerError,
			"An unexpected error occurred", err)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hunter2")
		assert.NotContains(t, rr.Body.String(), "connection refused")
		assert.Contains(t, rr.Body.String(), "An unexpected error occurred")
	})
}

func TestTraceID(t *testing.T) {
	t.Run("set and get round-trip", func(t *testing.T) {
		ctx := shared.SetTraceID(context.Background())

		traceID := shared.GetTraceID(ctx)
		assert.Len(t, traceID, shared.TraceIDLength*2)
	})

	t.Run("distinct per context", func(t *testing.T) {
		first := shared.GetTraceID(shared.SetTraceID(context.Background()))
		second := shared.GetTraceID(shared.SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})

	t.Run("empty without a trace id", func(t *testing.T) {
		assert.Empty(t, shared.GetTraceID(context.Background()))
	})
}
