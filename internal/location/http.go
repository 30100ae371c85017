// Copyright (c) 2026 SkillHub. All rights reserved.

package location

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillhub/web/internal/platform/apperr"
	requestutil "github.com/skillhub/web/internal/platform/request"
	"github.com/skillhub/web/internal/platform/respond"
	"github.com/skillhub/web/internal/session"
)

// Handler exposes the service-area catalog and the browser's selection.
type Handler struct {
	service *Service
}

// NewHandler creates the location handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /locations subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/selected", handler.selected)
	router.Put("/selected", handler.update)

	return router
}

type catalogView struct {
	Locations []Location `json:"locations"`
}

type selectionView struct {
	Selected *Location `json:"selected"`
	Label    string    `json:"label,omitempty"`
}

// list renders the full service-area catalog.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	locations, err := handler.service.Catalog().Locations(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, catalogView{Locations: locations})
}

// selected renders the browser's effective location, resolving the fallback
// if nothing is persisted yet.
func (handler *Handler) selected(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	location, err := handler.service.Resolve(request.Context(), sess.SID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, selectionView{Selected: location, Label: location.Label()})
}

// update persists a new selection for the browser.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	var input Location
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), sess.SID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, selectionView{Selected: &input, Label: input.Label()})
}
