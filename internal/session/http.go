// Copyright (c) 2026 SkillHub. All rights reserved.

package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillhub/web/internal/platform/apperr"
	"github.com/skillhub/web/internal/platform/constants"
	requestutil "github.com/skillhub/web/internal/platform/request"
	"github.com/skillhub/web/internal/platform/respond"
	"github.com/skillhub/web/internal/platform/validate"
)

// Handler exposes the auth actions of the site: login, signup, logout, and
// the current-session view consumed by the page header.
type Handler struct {
	service *Service
}

// NewHandler creates the auth handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the auth routes to the given router. They live at the
// site root, mirroring the page URLs the browser navigates to.
func (handler *Handler) Register(router chi.Router) {
	router.Post("/login", handler.Login)
	router.Post("/signup", handler.Signup)
	router.Post("/logout", handler.Logout)
	router.Get("/session", handler.Current)
}

// Routes returns a standalone router carrying the auth routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

// # Login

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginView struct {
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}

// Login authenticates against the upstream, persists the session, and
// resolves the post-login navigation target:
//
//   - customer                         -> /services
//   - provider with a complete profile -> /provider/dashboard
//   - provider without one             -> /provider/complete-profile
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var input loginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctx := request.Context()
	result, err := handler.service.upstream.login(ctx, input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token := result.bearer()
	if token == "" {
		respond.Error(writer, request, apperr.Unauthorized("Login failed: no token received"))
		return
	}

	sess := FromContext(ctx)
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	userID, _ := result.User.ID.Int64()
	role := Role(result.User.Role)
	if err := handler.service.Login(ctx, sess, token, role, userID, result.displayName()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithRedirect(writer,
		loginView{Role: role, DisplayName: sess.Name()},
		handler.postLoginTarget(request, sess),
	)
}

// postLoginTarget picks the landing page for a fresh login.
//
// For providers this issues the profile-completeness read. A missing or empty
// profile and a failed read both route to the completion flow, but they are
// logged as distinct events so an operator can tell "new provider" apart from
// "backend trouble".
func (handler *Handler) postLoginTarget(request *http.Request, sess *Session) string {
	if sess.Role != RoleProvider {
		return constants.PathServices
	}

	ctx := request.Context()
	log := handler.service.log

	complete, err := handler.service.upstream.hasProfile(ctx)
	switch {
	case err != nil:
		log.WarnContext(ctx, "provider_profile_check_failed",
			slog.String("sid", sess.SID),
			slog.String("error", err.Error()),
		)
		return constants.PathCompleteProfile
	case !complete:
		log.InfoContext(ctx, "provider_profile_missing", slog.String("sid", sess.SID))
		return constants.PathCompleteProfile
	}

	return constants.PathDashboard
}

// # Signup

// Signup forwards a registration to the upstream after checking locally that
// the password confirmation matches.
func (handler *Handler) Signup(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)
	validator.OneOf(FieldRole, input.Role, string(RoleCustomer), string(RoleProvider))
	validator.Custom(FieldPasswordConfirmation,
		input.Password != input.PasswordConfirmation,
		"Password and confirmation do not match")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.upstream.register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := result.Message
	if message == "" {
		message = "Registration successful! You can now log in."
	}
	respond.WithRedirect(writer, map[string]string{constants.FieldMessage: message}, constants.PathLogin)
}

// # Logout

// Logout clears the session (local clearing is unconditional, see
// [Service.Logout]) and sends the browser back to the login page.
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	sess := FromContext(request.Context())
	if sess == nil {
		respond.WithRedirect(writer, nil, constants.PathLogin)
		return
	}

	if err := handler.service.Logout(request.Context(), sess); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithRedirect(writer, nil, constants.PathLogin)
}

// # Current Session

type sessionView struct {
	IsLoggedIn  bool   `json:"is_logged_in"`
	Role        Role   `json:"role,omitempty"`
	DisplayName string `json:"display_name"`
}

// Current reports the session state the page header renders.
func (handler *Handler) Current(writer http.ResponseWriter, request *http.Request) {
	sess := FromContext(request.Context())

	view := sessionView{DisplayName: sess.Name()}
	if sess.IsActive() {
		view.IsLoggedIn = true
		view.Role = sess.Role
	}
	respond.OK(writer, view)
}
