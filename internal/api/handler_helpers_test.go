package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/listkeep/listkeep-api/internal/api/shared"
	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/mocks"
)

// newJSONRequest builds a request with an optional JSON body, an optional
// authenticated user, and optional chi URL parameters (given as key, value
// pairs).
func newJSONRequest(t *testing.T, method, target string, body any, userID uuid.UUID, params ...string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, target, &buf)
	ctx := r.Context()

	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, shared.UserIDContextKey, userID)
	}

	if len(params) > 0 {
		routeCtx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			routeCtx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return r.WithContext(ctx)
}

// decodeBody unmarshals the recorded response body into out.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out))
}

// errorKind extracts the machine-readable kind from an error response body.
func errorKind(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Kind string `json:"kind"`
	}
	decodeBody(t, rr, &resp)
	return resp.Kind
}

// fixtureUser seeds a user whose mock-hashed password is "password123".
func fixtureUser(t *testing.T, users *mocks.MockUserStore, username, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, email, "password123")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password123"
	user.Password = ""
	require.NoError(t, users.Create(context.Background(), user))
	return user
}
