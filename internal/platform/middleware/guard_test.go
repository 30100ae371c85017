// Copyright (c) 2026 SkillHub. All rights reserved.

package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/platform/constants"
	"github.com/skillhub/web/internal/platform/middleware"
	"github.com/skillhub/web/internal/platform/sec"
	"github.com/skillhub/web/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole_OutcomeMatrix(t *testing.T) {
	anonymous := &session.Session{SID: "sid-a"}
	customer := &session.Session{SID: "sid-c", Token: "tok", Role: session.RoleCustomer}
	provider := &session.Session{SID: "sid-p", Token: "tok", Role: session.RoleProvider}

	tests := []struct {
		name     string
		required session.Role
		sess     *session.Session
		wantPass bool
	}{
		{"customer_route_anonymous", session.RoleCustomer, anonymous, false},
		{"customer_route_customer", session.RoleCustomer, customer, true},
		{"customer_route_provider", session.RoleCustomer, provider, false},
		{"provider_route_anonymous", session.RoleProvider, anonymous, false},
		{"provider_route_customer", session.RoleProvider, customer, false},
		{"provider_route_provider", session.RoleProvider, provider, true},
		{"customer_route_no_session", session.RoleCustomer, nil, false},
		{"provider_route_no_session", session.RoleProvider, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guarded := middleware.RequireRole(tt.required)(okHandler())

			request := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.sess != nil {
				request = request.WithContext(session.NewContext(request.Context(), tt.sess))
			}

			recorder := httptest.NewRecorder()
			guarded.ServeHTTP(recorder, request)

			if tt.wantPass {
				assert.Equal(t, http.StatusOK, recorder.Code)
				return
			}
			assert.Equal(t, http.StatusFound, recorder.Code)
			assert.Equal(t, constants.PathLogin, recorder.Header().Get("Location"))
		})
	}
}

func TestRequireRole_ReEvaluatesPerRequest(t *testing.T) {
	sess := &session.Session{SID: "sid-r", Token: "tok", Role: session.RoleCustomer}
	guarded := middleware.RequireRole(session.RoleCustomer)(okHandler())

	request := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	request = request.WithContext(session.NewContext(request.Context(), sess))
	recorder := httptest.NewRecorder()
	guarded.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Once the login state is cleared, the same browser is turned away.
	sess.Token = ""
	sess.Role = ""
	request = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	request = request.WithContext(session.NewContext(request.Context(), sess))
	recorder = httptest.NewRecorder()
	guarded.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusFound, recorder.Code)
}

func newLoader(t *testing.T) (*middleware.SessionLoader, *sec.CookieSigner, session.Store) {
	t.Helper()
	signer := sec.NewCookieSigner("test-secret", constants.CookieIssuer,
		constants.SessionCookieName, constants.SessionCookiePath, false)

	store := session.NewMemoryStore()
	client, err := gateway.New("http://upstream.invalid", nil, slog.Default(), nil)
	require.NoError(t, err)
	service := session.NewService(store, client, slog.Default())

	return middleware.NewSessionLoader(signer, service, slog.Default()), signer, store
}

func TestSessionLoader_MintsCookieForNewBrowser(t *testing.T) {
	loader, signer, _ := newLoader(t)

	var seen *session.Session
	handler := loader.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.FromContext(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, seen)
	assert.False(t, seen.IsActive())

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	sid, err := signer.Verify(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, seen.SID, sid)
}

func TestSessionLoader_LoadsExistingRecord(t *testing.T) {
	loader, signer, store := newLoader(t)

	existing := &session.Session{SID: "sid-known", Token: "tok", Role: session.RoleProvider, DisplayName: "Bilal"}
	require.NoError(t, store.Save(context.Background(), existing))

	cookie, err := signer.Issue("sid-known")
	require.NoError(t, err)

	var seen *session.Session
	handler := loader.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.FromContext(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(cookie)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, seen)
	assert.Equal(t, "sid-known", seen.SID)
	assert.True(t, seen.IsActive())
	assert.Empty(t, recorder.Result().Cookies(), "a valid cookie must not be reissued")
}

func TestSessionLoader_RejectsTamperedCookie(t *testing.T) {
	loader, _, _ := newLoader(t)

	foreign := sec.NewCookieSigner("other-secret", constants.CookieIssuer,
		constants.SessionCookieName, constants.SessionCookiePath, false)
	forged, err := foreign.Issue("sid-victim")
	require.NoError(t, err)

	var seen *session.Session
	handler := loader.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.FromContext(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(forged)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, seen)
	assert.NotEqual(t, "sid-victim", seen.SID)
	require.Len(t, recorder.Result().Cookies(), 1, "a fresh identity must be issued")
}
