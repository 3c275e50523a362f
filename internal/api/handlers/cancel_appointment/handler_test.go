package cancel_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkbeauty/salon-booking-service/internal/api/middleware"
	"github.com/lkbeauty/salon-booking-service/internal/service/appointments"
	"github.com/lkbeauty/salon-booking-service/internal/service/appointments/models"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeService struct {
	err           error
	gotID         int64
	gotCustomerID int64
}

func (f *fakeService) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	f.gotID = appointmentID
	f.gotCustomerID = req.CustomerID
	return f.err
}

func newRouter(service *fakeService) *mux.Router {
	handler := NewHandler(service, noopLogger{})

	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", handler.Handle).Methods(http.MethodPost)
	return router
}

func doRequest(t *testing.T, router *mux.Router, path, customerHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if customerHeader != "" {
		req.Header.Set(middleware.HeaderCustomerID, customerHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	service := &fakeService{}
	router := newRouter(service)

	rec := doRequest(t, router, "/api/v1/appointments/7/cancel", "42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), service.gotID)
	assert.Equal(t, int64(42), service.gotCustomerID)

	var body CancelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)
}

func TestHandle_MissingCustomerHeader(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := doRequest(t, router, "/api/v1/appointments/7/cancel", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_InvalidAppointmentID(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := doRequest(t, router, "/api/v1/appointments/abc/cancel", "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", appointments.ErrAppointmentNotFound, http.StatusNotFound, ""},
		{"access denied", appointments.ErrAccessDenied, http.StatusForbidden, ""},
		{"already cancelled", appointments.ErrAlreadyCancelled, http.StatusConflict, "already_cancelled"},
		{"too late", appointments.ErrTooLateToCancel, http.StatusConflict, "too_late"},
		{"cannot cancel", appointments.ErrCannotCancel, http.StatusConflict, "cannot_cancel"},
		{"internal", appointments.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(&fakeService{err: tc.err})

			rec := doRequest(t, router, "/api/v1/appointments/7/cancel", "42")
			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantCode != "" {
				var body struct {
					Code string `json:"code"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tc.wantCode, body.Code)
			}
		})
	}
}
