// Copyright (c) 2026 SkillHub. All rights reserved.

package provider

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/order"
	"github.com/skillhub/web/internal/platform/apperr"
	"github.com/skillhub/web/internal/platform/constants"
	requestutil "github.com/skillhub/web/internal/platform/request"
	"github.com/skillhub/web/internal/platform/respond"
	"github.com/skillhub/web/internal/platform/validate"
	"github.com/skillhub/web/internal/session"
)

// Handler exposes the provider routes, mounted under /provider behind the
// provider role guard.
type Handler struct {
	service *Service
}

// NewHandler creates the provider handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /provider subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/dashboard", handler.dashboard)
	router.Put("/orders/{orderID}/status", handler.updateStatus)
	router.Get("/profile", handler.profile)
	router.Put("/profile", handler.saveProfile)

	return router
}

// dashboard renders the job overview for the selected location.
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	dashboard, err := handler.service.Dashboard(request.Context(), sess.SID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dashboard)
}

type statusInput struct {
	Status string `json:"status"`
}

type statusView struct {
	Message   string     `json:"message"`
	Dashboard *Dashboard `json:"dashboard"`
}

// updateStatus moves a job to a new status and returns the rebuilt dashboard.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	var input statusInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.OneOf(constants.FieldStatus, input.Status,
		string(order.StatusAccepted), string(order.StatusCancelled), string(order.StatusCompleted))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	orderID := requestutil.Param(request, "orderID")
	message, dashboard, err := handler.service.UpdateStatus(request.Context(), sess.SID, orderID, order.Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, statusView{Message: messageText(message, "Status updated"), Dashboard: dashboard})
}

// profile renders the stored profile plus the service catalog for the form.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.Profile(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

// saveProfile completes the profile and sends the browser to the dashboard.
func (handler *Handler) saveProfile(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	var input ProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("description", input.Description)
	validator.Positive("hourly_rate", input.HourlyRate)
	validator.Positive("service_id", float64(input.ServiceID))
	validator.Custom("experience_years", input.ExperienceYears < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SaveProfile(request.Context(), sess.SID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithRedirect(writer,
		map[string]string{constants.FieldMessage: "Profile saved"},
		constants.PathDashboard,
	)
}

// messageText returns the upstream message or a fallback.
func messageText(message *gateway.Message, fallback string) string {
	if message != nil && message.Message != "" {
		return message.Message
	}
	return fallback
}
