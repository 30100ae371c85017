// Copyright (c) 2026 SkillHub. All rights reserved.

package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/platform/apperr"
	"github.com/skillhub/web/internal/platform/constants"
	requestutil "github.com/skillhub/web/internal/platform/request"
	"github.com/skillhub/web/internal/platform/respond"
	"github.com/skillhub/web/internal/platform/validate"
	"github.com/skillhub/web/internal/session"
)

// Handler exposes the customer order routes. All of them sit behind the
// customer role guard.
type Handler struct {
	service *Service
}

// NewHandler creates the customer orders handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the customer order routes to the given router.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/my-orders", handler.List)
	router.Post("/orders", handler.Place)
	router.Put("/orders/{orderID}/cancel", handler.Cancel)
	router.Post("/orders/{orderID}/rate", handler.Rate)
}

type listView struct {
	Orders []View `json:"orders"`
}

type mutationView struct {
	Message string `json:"message"`
	Orders  []View `json:"orders"`
}

// List renders the customer's bookings.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listView{Orders: present(list)})
}

// Place submits a booking and sends the browser to the bookings page.
func (handler *Handler) Place(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	var input BookingInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Positive("provider_user_id", float64(input.ProviderUserID))
	validator.Positive("service_id", float64(input.ServiceID))
	validator.Positive("total_price", input.TotalPrice)
	validator.Required("scheduled_at", input.ScheduledAt)
	validator.Required("customer_address", input.Address)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.Place(request.Context(), sess, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if message.Message == "" {
		message.Message = "Booking placed successfully"
	}
	respond.WithRedirect(writer,
		map[string]string{constants.FieldMessage: message.Message},
		constants.PathMyOrders,
	)
}

// Cancel cancels a pending booking and returns the fresh list.
func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	orderID := requestutil.Param(request, "orderID")

	message, fresh, err := handler.service.Cancel(request.Context(), orderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, mutationView{Message: messageText(message, "Booking cancelled"), Orders: present(fresh)})
}

type rateInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Rate submits a review for a completed booking and returns the fresh list.
func (handler *Handler) Rate(writer http.ResponseWriter, request *http.Request) {
	orderID := requestutil.Param(request, "orderID")

	var input rateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Range("rating", input.Rating, 1, 5)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, fresh, err := handler.service.Rate(request.Context(), orderID, input.Rating, input.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, mutationView{Message: messageText(message, "Thanks for your rating"), Orders: present(fresh)})
}

// messageText returns the upstream message or a fallback.
func messageText(message *gateway.Message, fallback string) string {
	if message != nil && message.Message != "" {
		return message.Message
	}
	return fallback
}
