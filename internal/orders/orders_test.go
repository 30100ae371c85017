// Copyright (c) 2026 SkillHub. All rights reserved.

package orders_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/orders"
	"github.com/skillhub/web/internal/session"
)

// backend scripts the order endpoints, serving ordersBodies in sequence so a
// re-fetch after a mutation can observe different state.
type backend struct {
	t *testing.T

	locationsBody string
	ordersBodies  []string
	ordersServed  int

	placedBody  []byte
	cancelCalls int
	rateCalls   int
	rateBody    []byte
}

func (b *backend) serve() *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/locations":
			_, _ = w.Write([]byte(b.locationsBody))
		case r.URL.Path == "/orders/customer":
			body := b.ordersBodies[len(b.ordersBodies)-1]
			if b.ordersServed < len(b.ordersBodies) {
				body = b.ordersBodies[b.ordersServed]
			}
			b.ordersServed++
			_, _ = w.Write([]byte(body))
		case r.URL.Path == "/orders" && r.Method == http.MethodPost:
			b.placedBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"Order placed successfully"}`))
		case strings.HasSuffix(r.URL.Path, "/cancel"):
			b.cancelCalls++
			_, _ = w.Write([]byte(`{"message":"Booking cancelled successfully"}`))
		case strings.HasSuffix(r.URL.Path, "/rate"):
			b.rateCalls++
			b.rateBody, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"message":"Review saved"}`))
		default:
			b.t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	b.t.Cleanup(srv.Close)
	return srv
}

func newHandler(t *testing.T, upstreamURL string) *orders.Handler {
	t.Helper()
	client, err := gateway.New(upstreamURL, nil, slog.Default(), session.TokenFromContext)
	require.NoError(t, err)

	areas := location.NewCatalog(client, slog.Default())
	locations := location.NewService(areas, location.NewMemorySelectionStore(), slog.Default())

	return orders.NewHandler(orders.NewService(client, locations, slog.Default()))
}

func do(t *testing.T, handler *orders.Handler, sess *session.Session, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	handler.Register(router)

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request = request.WithContext(session.NewContext(request.Context(), sess))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func customerSession() *session.Session {
	return &session.Session{SID: "sid-c", Token: "tok", Role: session.RoleCustomer, UserID: 42, DisplayName: "Sana"}
}

func TestPlace_FormatsBookingPayload(t *testing.T) {
	b := &backend{
		t:             t,
		locationsBody: `{"locations":[{"location_id":3,"city":"Lahore","area":"DHA"}]}`,
		ordersBodies:  []string{`{"orders":[]}`},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPost, "/orders",
		`{"provider_user_id":11,"service_id":2,"total_price":1500,"scheduled_at":"2026-09-15T14:30","customer_address":"House 12, Street 5","notes":""}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var placed map[string]interface{}
	require.NoError(t, json.Unmarshal(b.placedBody, &placed))
	assert.Equal(t, "2026-09-15 14:30:00", placed["scheduled_at"])
	assert.Equal(t, "House 12, Street 5, DHA", placed["customer_address"])
	assert.Equal(t, "No notes provided", placed["notes"])
	assert.Equal(t, "COD", placed["payment_method"])
	assert.Equal(t, "pending", placed["status"])
	assert.Equal(t, float64(42), placed["customer_id"])
	assert.Equal(t, float64(3), placed["location_id"])
	assert.Equal(t, float64(11), placed["provider_user_id"])

	var envelope struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "/my-orders", envelope.Redirect)
}

func TestPlace_RejectsUnparseableSchedule(t *testing.T) {
	b := &backend{
		t:             t,
		locationsBody: `{"locations":[{"location_id":3,"city":"Lahore","area":"DHA"}]}`,
		ordersBodies:  []string{`{"orders":[]}`},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPost, "/orders",
		`{"provider_user_id":11,"service_id":2,"total_price":1500,"scheduled_at":"next tuesday","customer_address":"House 12"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "scheduled_at")
	assert.Nil(t, b.placedBody)
}

func TestPlace_RequiresResolvableLocation(t *testing.T) {
	b := &backend{
		t:             t,
		locationsBody: `{"locations":[]}`,
		ordersBodies:  []string{`{"orders":[]}`},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPost, "/orders",
		`{"provider_user_id":11,"service_id":2,"total_price":1500,"scheduled_at":"2026-09-15T14:30","customer_address":"House 12"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Nil(t, b.placedBody)
}

func TestCancel_PendingOrderReturnsFreshList(t *testing.T) {
	b := &backend{
		t:             t,
		locationsBody: `{"locations":[{"location_id":3,"city":"Lahore","area":"DHA"}]}`,
		ordersBodies: []string{
			`{"orders":[{"id":7,"status":"pending","total_price":"900.00"}]}`,
			`{"orders":[{"id":7,"status":"cancelled","total_price":"900.00"}]}`,
		},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPut, "/orders/7/cancel", "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, 1, b.cancelCalls)

	// The response carries the backend's post-mutation state, not a locally
	// patched copy.
	var view struct {
		Data struct {
			Message string `json:"message"`
			Orders  []struct {
				Status string `json:"status"`
			} `json:"orders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &view))
	assert.Equal(t, "Booking cancelled successfully", view.Data.Message)
	require.Len(t, view.Data.Orders, 1)
	assert.Equal(t, "cancelled", view.Data.Orders[0].Status)
}

func TestCancel_NonPendingOrderRejectedLocally(t *testing.T) {
	b := &backend{
		t:             t,
		locationsBody: `{"locations":[]}`,
		ordersBodies:  []string{`{"orders":[{"id":7,"status":"accepted"}]}`},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPut, "/orders/7/cancel", "")
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Zero(t, b.cancelCalls, "the backend must not see an impossible command")
}

func TestCancel_UnknownOrder(t *testing.T) {
	b := &backend{
		t:            t,
		ordersBodies: []string{`{"orders":[]}`},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPut, "/orders/404/cancel", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRate_BoundsEnforcedBeforeAnyFetch(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		b := &backend{
			t:            t,
			ordersBodies: []string{`{"orders":[{"id":7,"status":"completed"}]}`},
		}
		srv := b.serve()
		handler := newHandler(t, srv.URL)

		recorder := do(t, handler, customerSession(), http.MethodPost, "/orders/7/rate",
			fmt.Sprintf(`{"rating":%d,"comment":"ok"}`, rating))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "rating %d", rating)
		assert.Zero(t, b.rateCalls)
	}
}

func TestRate_CompletedUnratedOrder(t *testing.T) {
	b := &backend{
		t: t,
		ordersBodies: []string{
			`{"orders":[{"id":7,"status":"completed"}]}`,
			`{"orders":[{"id":7,"status":"completed","review":{"rating":4,"comment":"solid"}}]}`,
		},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPost, "/orders/7/rate",
		`{"rating":4,"comment":"solid"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, 1, b.rateCalls)
	assert.JSONEq(t, `{"rating":4,"comment":"solid"}`, string(b.rateBody))
	assert.Contains(t, recorder.Body.String(), `"can_rate":false`)
}

func TestRate_AlreadyReviewedRejected(t *testing.T) {
	b := &backend{
		t:            t,
		ordersBodies: []string{`{"orders":[{"id":7,"status":"completed","review":{"rating":5}}]}`},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, customerSession(), http.MethodPost, "/orders/7/rate",
		`{"rating":3,"comment":""}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Zero(t, b.rateCalls)
}

func TestList_BearerTokenForwarded(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"orders":[]}`))
	}))
	defer srv.Close()

	handler := newHandler(t, srv.URL)
	recorder := do(t, handler, customerSession(), http.MethodGet, "/my-orders", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Bearer tok", auth)
}
