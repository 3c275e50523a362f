package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableTimes "github.com/lkbeauty/salon-booking-service/internal/usecase/get_available_times"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *getAvailableTimes.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableTimes.Request) (*getAvailableTimes.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func doRequest(t *testing.T, useCase *fakeUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(useCase, noopLogger{})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	useCase := &fakeUseCase{resp: &getAvailableTimes.Response{
		Date:                 time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		TotalDurationMinutes: 60,
		Config: getAvailableTimes.ScheduleConfig{
			OpeningTime:         "09:00",
			ClosingTime:         "18:00",
			SlotIntervalMinutes: 15,
		},
		Slots: []getAvailableTimes.Slot{
			{StartTime: "10:00", EndTime: "11:00", AvailableStaff: 2},
		},
	}}

	rec := doRequest(t, useCase, "/api/v1/availability?date=2026-09-16&serviceIds=1,2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-09-16", body.Date)
	assert.Equal(t, 60, body.TotalDurationMinutes)
	// Сетка расписания возвращается вместе со слотами
	assert.Equal(t, "09:00", body.Config.OpeningTime)
	assert.Equal(t, "18:00", body.Config.ClosingTime)
	assert.Equal(t, 15, body.Config.SlotIntervalMinutes)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "10:00", body.Slots[0].StartTime)
	assert.Equal(t, 2, body.Slots[0].AvailableStaff)
}

func TestHandle_UnknownServiceIsBadRequest(t *testing.T) {
	useCase := &fakeUseCase{err: getAvailableTimes.ErrUnknownService}

	rec := doRequest(t, useCase, "/api/v1/availability?date=2026-09-16&serviceIds=99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingDate(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "/api/v1/availability?serviceIds=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedDate(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "/api/v1/availability?date=16.09.2026&serviceIds=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedServiceIDs(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "/api/v1/availability?date=2026-09-16&serviceIds=1,abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
