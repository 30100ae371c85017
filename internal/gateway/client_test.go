// Copyright (c) 2026 SkillHub. All rights reserved.

package gateway_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/platform/apperr"
)

type tokenKey struct{}

func tokenSource(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func withToken(token string) context.Context {
	return context.WithValue(context.Background(), tokenKey{}, token)
}

func newClient(t *testing.T, baseURL string) *gateway.Client {
	t.Helper()
	client, err := gateway.New(baseURL, nil, slog.Default(), tokenSource)
	require.NoError(t, err)
	return client
}

func TestClient_InjectsBearerFromSessionState(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)

	require.NoError(t, client.Get(withToken("tok-1"), "/orders/customer", nil, nil))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_AnonymousRequestOmitsHeader(t *testing.T) {
	var gotAuth string
	var hasHeader bool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)

	require.NoError(t, client.Get(context.Background(), "/locations", nil, nil))
	assert.Empty(t, gotAuth)
	assert.False(t, hasHeader)
}

func TestClient_AuthFailureFiresHookOnce(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthenticated."}`, http.StatusUnauthorized)
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)

	hookCalls := 0
	client.SetAuthFailureHook(func(context.Context) { hookCalls++ })

	err := client.Get(withToken("stale"), "/orders/customer", nil, nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "SESSION_EXPIRED", ae.Code)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
	assert.Equal(t, 1, hookCalls)
}

func TestClient_ValidationFailureCarriesFieldDetails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"scheduled_at":["The scheduled at field is required."]}}`))
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)

	err := client.Post(withToken("tok"), "/orders", map[string]string{}, nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNPROCESSABLE", ae.Code)
	assert.Equal(t, "The given data was invalid.", ae.Message)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "scheduled_at", ae.Details[0].Field)
}

func TestClient_TransportFailureIsUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing is listening anymore

	client := newClient(t, upstream.URL)

	err := client.Get(context.Background(), "/locations", nil, nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_UNREACHABLE", ae.Code)
	assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
}

func TestClient_UpstreamRejectionKeepsStatusAndMessage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Order already accepted"}`))
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)

	err := client.Put(withToken("tok"), "/provider/orders/7/status", map[string]string{"status": "accepted"}, nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.Equal(t, "Order already accepted", ae.Message)
}

func TestExtractList(t *testing.T) {
	type loc struct {
		City string `json:"city"`
	}

	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare_array", `[{"city":"Karachi"},{"city":"Lahore"}]`, 2},
		{"keyed_object", `{"locations":[{"city":"Karachi"}]}`, 1},
		{"missing_key", `{"message":"ok"}`, 0},
		{"empty_body", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []loc
			err := gateway.ExtractList(json.RawMessage(tt.payload), "locations", &out)
			require.NoError(t, err)
			assert.Len(t, out, tt.want)
		})
	}
}
