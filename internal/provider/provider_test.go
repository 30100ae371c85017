// Copyright (c) 2026 SkillHub. All rights reserved.

package provider_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/provider"
	"github.com/skillhub/web/internal/session"
)

// backend scripts the provider endpoints, serving ordersBodies in sequence.
type backend struct {
	t *testing.T

	locationsBody string
	ordersBodies  []string
	ordersServed  int
	ordersQuery   string

	profileBody  string
	servicesBody string

	statusCalls   int
	statusBody    []byte
	profileSaved  []byte
	attachedBody  []byte
	attachedCalls int
}

func (b *backend) serve() *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/locations":
			_, _ = w.Write([]byte(b.locationsBody))
		case r.URL.Path == "/provider/orders":
			b.ordersQuery = r.URL.RawQuery
			body := b.ordersBodies[len(b.ordersBodies)-1]
			if b.ordersServed < len(b.ordersBodies) {
				body = b.ordersBodies[b.ordersServed]
			}
			b.ordersServed++
			_, _ = w.Write([]byte(body))
		case strings.HasSuffix(r.URL.Path, "/status") && r.Method == http.MethodPut:
			b.statusCalls++
			b.statusBody, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"message":"Status updated!"}`))
		case r.URL.Path == "/provider/profile" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(b.profileBody))
		case r.URL.Path == "/provider/profile" && r.Method == http.MethodPut:
			b.profileSaved, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"message":"Profile updated"}`))
		case r.URL.Path == "/provider/services":
			b.attachedCalls++
			b.attachedBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"Services attached"}`))
		case r.URL.Path == "/services":
			_, _ = w.Write([]byte(b.servicesBody))
		default:
			b.t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	b.t.Cleanup(srv.Close)
	return srv
}

func newHandler(t *testing.T, upstreamURL string) *provider.Handler {
	t.Helper()
	client, err := gateway.New(upstreamURL, nil, slog.Default(), session.TokenFromContext)
	require.NoError(t, err)

	areas := location.NewCatalog(client, slog.Default())
	locations := location.NewService(areas, location.NewMemorySelectionStore(), slog.Default())

	return provider.NewHandler(provider.NewService(client, locations, slog.Default()))
}

func do(t *testing.T, handler *provider.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	sess := &session.Session{SID: "sid-p", Token: "tok", Role: session.RoleProvider, UserID: 9, DisplayName: "Bilal"}

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request = request.WithContext(session.NewContext(request.Context(), sess))
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

const lahore = `{"locations":[{"location_id":3,"city":"Lahore","area":"DHA"}]}`

func TestDashboard_DerivesBucketsAndStats(t *testing.T) {
	b := &backend{
		t:             t,
		locationsBody: lahore,
		ordersBodies: []string{`{"orders":[
			{"id":1,"status":"pending","total_price":"500.00"},
			{"id":2,"status":"accepted","total_price":800},
			{"id":3,"status":"in_progress","total_price":100},
			{"id":4,"status":"completed","total_price":"1200.00","review":{"rating":5}},
			{"id":5,"status":"completed","total_price":300},
			{"id":6,"status":"cancelled","total_price":9999}
		]}`},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, "location_id=3", b.ordersQuery)

	var view struct {
		Data struct {
			TotalJobs int     `json:"total_jobs"`
			Earnings  float64 `json:"earnings"`
			Buckets   struct {
				Pending []json.RawMessage `json:"pending"`
				Active  []json.RawMessage `json:"active"`
				Past    []json.RawMessage `json:"past"`
			} `json:"buckets"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &view))
	assert.Equal(t, 6, view.Data.TotalJobs)
	assert.Equal(t, 1500.0, view.Data.Earnings)
	assert.Len(t, view.Data.Buckets.Pending, 1)
	assert.Len(t, view.Data.Buckets.Active, 2)
	assert.Len(t, view.Data.Buckets.Past, 3)
}

func TestDashboard_RequiresResolvableLocation(t *testing.T) {
	b := &backend{t: t, locationsBody: `{"locations":[]}`}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestUpdateStatus_AcceptPendingJob(t *testing.T) {
	b := &backend{
		t:             t,
		locationsBody: lahore,
		ordersBodies: []string{
			`{"orders":[{"id":7,"status":"pending","total_price":500}]}`,
			`{"orders":[{"id":7,"status":"accepted","total_price":500}]}`,
		},
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodPut, "/orders/7/status", `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, 1, b.statusCalls)
	assert.JSONEq(t, `{"status":"accepted"}`, string(b.statusBody))

	// The dashboard in the response reflects the re-fetched state.
	assert.Contains(t, recorder.Body.String(), `"Status updated!"`)
	assert.Contains(t, recorder.Body.String(), `"status":"accepted"`)
	assert.NotContains(t, recorder.Body.String(), `"status":"pending"`)
}

func TestUpdateStatus_RejectsUnknownStatusValue(t *testing.T) {
	b := &backend{t: t, locationsBody: lahore, ordersBodies: []string{`{"orders":[]}`}}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodPut, "/orders/7/status", `{"status":"in_progress"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Zero(t, b.statusCalls)
}

func TestUpdateStatus_IllegalTransitionRejectedLocally(t *testing.T) {
	tests := []struct {
		name   string
		orders string
		status string
	}{
		{"complete_a_pending_job", `{"orders":[{"id":7,"status":"pending"}]}`, "completed"},
		{"accept_a_completed_job", `{"orders":[{"id":7,"status":"completed"}]}`, "accepted"},
		{"cancel_a_cancelled_job", `{"orders":[{"id":7,"status":"cancelled"}]}`, "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &backend{t: t, locationsBody: lahore, ordersBodies: []string{tt.orders}}
			srv := b.serve()
			handler := newHandler(t, srv.URL)

			recorder := do(t, handler, http.MethodPut, "/orders/7/status", `{"status":"`+tt.status+`"}`)
			assert.Equal(t, http.StatusConflict, recorder.Code)
			assert.Zero(t, b.statusCalls)
		})
	}
}

func TestProfile_BundlesServiceCatalog(t *testing.T) {
	b := &backend{
		t:            t,
		profileBody:  `{"profile":{"description":"Plumber","hourly_rate":"1500.00","experience_years":4}}`,
		servicesBody: `{"services":[{"service_id":1,"service_name":"Plumbing"}]}`,
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodGet, "/profile", "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"Plumber"`)
	assert.Contains(t, recorder.Body.String(), `"Plumbing"`)
}

func TestProfile_NullForIncompleteProfile(t *testing.T) {
	b := &backend{
		t:            t,
		profileBody:  `{"profile":null}`,
		servicesBody: `{"services":[]}`,
	}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodGet, "/profile", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"profile":null`)
}

func TestSaveProfile_AttachesLocationAndService(t *testing.T) {
	b := &backend{t: t, locationsBody: lahore}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodPut, "/profile",
		`{"description":"Certified electrician","hourly_rate":1200,"experience_years":6,"service_id":4,"skills":"wiring, repair"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var saved map[string]interface{}
	require.NoError(t, json.Unmarshal(b.profileSaved, &saved))
	assert.Equal(t, float64(3), saved["location_id"])
	assert.Equal(t, "available", saved["availability_status"])
	assert.Equal(t, "Certified electrician", saved["description"])

	require.Equal(t, 1, b.attachedCalls)
	assert.JSONEq(t, `{"services":[{"service_id":4,"price":1200}]}`, string(b.attachedBody))

	var envelope struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "/provider/dashboard", envelope.Redirect)
}

func TestSaveProfile_ValidatesInput(t *testing.T) {
	b := &backend{t: t, locationsBody: lahore}
	srv := b.serve()
	handler := newHandler(t, srv.URL)

	recorder := do(t, handler, http.MethodPut, "/profile",
		`{"description":"","hourly_rate":0,"experience_years":-1,"service_id":0}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Nil(t, b.profileSaved)
}
