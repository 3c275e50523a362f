package get_appointment

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
	resp *models.AppointmentResponse
	err  error
}

func (f *fakeService) GetByID(ctx context.Context, id int64, customerID int64) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newRouter(service *fakeService) *mux.Router {
	handler := NewHandler(service, noopLogger{})

	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/appointments/{appointmentId}", handler.Handle).Methods(http.MethodGet)
	return router
}

func doRequest(t *testing.T, router *mux.Router, path, customerHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if customerHeader != "" {
		req.Header.Set(middleware.HeaderCustomerID, customerHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	service := &fakeService{resp: &models.AppointmentResponse{
		ID:         7,
		CustomerID: 42,
		Status:     "confirmed",
		StartTime:  "14:00",
	}}
	router := newRouter(service)

	rec := doRequest(t, router, "/api/v1/appointments/7", "42")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "confirmed", body.Status)
}

func TestHandle_MissingCustomerHeader(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := doRequest(t, router, "/api/v1/appointments/7", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_InvalidAppointmentID(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := doRequest(t, router, "/api/v1/appointments/abc", "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_NotFound(t *testing.T) {
	router := newRouter(&fakeService{err: appointments.ErrAppointmentNotFound})

	rec := doRequest(t, router, "/api/v1/appointments/7", "42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_AccessDenied(t *testing.T) {
	router := newRouter(&fakeService{err: appointments.ErrAccessDenied})

	rec := doRequest(t, router, "/api/v1/appointments/7", "42")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	router := newRouter(&fakeService{err: appointments.ErrInternal})

	rec := doRequest(t, router, "/api/v1/appointments/7", "42")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
