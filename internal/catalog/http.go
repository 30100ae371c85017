// Copyright (c) 2026 SkillHub. All rights reserved.

package catalog

import (
	"net/http"

	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/platform/apperr"
	requestutil "github.com/skillhub/web/internal/platform/request"
	"github.com/skillhub/web/internal/platform/respond"
	"github.com/skillhub/web/internal/platform/validate"
	"github.com/skillhub/web/internal/session"
)

// Handler exposes the browse views. The routes are registered by the server
// because they live at the site root with different guards: /services is
// customer-only, /providers is public.
type Handler struct {
	browser *Browser
}

// NewHandler creates the browse handler.
func NewHandler(browser *Browser) *Handler {
	return &Handler{browser: browser}
}

type servicesView struct {
	Location *location.Location `json:"location"`
	Services []Service          `json:"services"`
}

type providersView struct {
	Providers []Provider `json:"providers"`
}

// Services renders the services offered in the browser's selected area.
func (handler *Handler) Services(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	selected, services, err := handler.browser.Services(request.Context(), sess.SID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, servicesView{Location: selected, Services: services})
}

// Providers renders the providers offering the requested service.
func (handler *Handler) Providers(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	serviceID := requestutil.Query(request, "service_id")
	validator := &validate.Validator{}
	validator.Required("service_id", serviceID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	providers, err := handler.browser.Providers(request.Context(), sess.SID, serviceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, providersView{Providers: providers})
}
