// Copyright (c) 2026 SkillHub. All rights reserved.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillhub/web/internal/platform/constants"
	"github.com/skillhub/web/internal/platform/ctxutil"
	"github.com/skillhub/web/internal/platform/respond"
	"github.com/skillhub/web/internal/session"
)

// # Session Loading

// SessionLoader identifies the browser and attaches its durable session
// record to the request context.
//
// The identity cookie is verified locally (signature only, no network I/O)
// and the record is loaded fresh from the store on every request. A missing
// or invalid cookie mints a new anonymous session and sets a replacement
// cookie. The upstream bearer token inside the record is never re-verified
// here; the backend rejects it on use and the gateway handles that centrally.
type SessionLoader struct {
	signer  CookieSigner
	service *session.Service
	log     *slog.Logger
}

// CookieSigner is the part of the cookie layer the loader needs.
type CookieSigner interface {
	Issue(sid string) (*http.Cookie, error)
	Verify(value string) (string, error)
	Name() string
}

// NewSessionLoader creates the session-loading middleware.
func NewSessionLoader(signer CookieSigner, service *session.Service, log *slog.Logger) *SessionLoader {
	return &SessionLoader{signer: signer, service: service, log: log}
}

// Handler wraps next with session loading.
func (loader *SessionLoader) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		sid, fresh := loader.identify(request)

		sess, err := loader.service.Begin(ctx, sid)
		if err != nil {
			loader.log.ErrorContext(ctx, "session_load_failed",
				slog.String("sid", sid),
				slog.String("error", err.Error()),
			)
			respond.Error(writer, request, err)
			return
		}

		if fresh {
			cookie, err := loader.signer.Issue(sid)
			if err != nil {
				loader.log.ErrorContext(ctx, "session_cookie_issue_failed",
					slog.String("error", err.Error()),
				)
				respond.Error(writer, request, err)
				return
			}
			http.SetCookie(writer, cookie)
		}

		next.ServeHTTP(writer, request.WithContext(session.NewContext(ctx, sess)))
	})
}

// identify extracts the browser's session ID from the identity cookie, or
// mints a new one. fresh reports that a replacement cookie must be set.
func (loader *SessionLoader) identify(request *http.Request) (sid string, fresh bool) {
	cookie, err := request.Cookie(loader.signer.Name())
	if err == nil {
		if sid, err := loader.signer.Verify(cookie.Value); err == nil {
			return sid, false
		}
		loader.log.InfoContext(request.Context(), "session_cookie_rejected")
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String(), true
}

// # Role Gate

// RequireRole admits only requests whose loaded session is logged in with the
// given role. Everything else is sent to the login page: anonymous browsers,
// foreign roles, and sessions whose login state was cleared mid-flight are
// all the same case from the guard's point of view.
//
// The decision is re-evaluated from the freshly loaded record on every
// request, so a logout or an upstream invalidation takes effect on the very
// next navigation.
func RequireRole(role session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sess := session.FromContext(request.Context())

			if sess == nil || !sess.IsActive() || sess.Role != role {
				logger := ctxutil.GetLogger(request.Context())
				logger.InfoContext(request.Context(), "route_access_denied",
					slog.String("required_role", string(role)),
				)
				respond.Redirect(writer, request, constants.PathLogin)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
