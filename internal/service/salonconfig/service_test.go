package salonconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/internal/service/salonconfig/models"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeConfigRepo struct {
	config  domain.SalonConfig
	updated *domain.SalonConfig
}

func (f *fakeConfigRepo) Get(ctx context.Context) (*domain.SalonConfig, error) {
	cfg := f.config
	return &cfg, nil
}

func (f *fakeConfigRepo) Update(ctx context.Context, config *domain.SalonConfig) (*domain.SalonConfig, error) {
	f.updated = config
	return config, nil
}

func validUpdateRequest() *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		OpeningTime:         "10:00",
		ClosingTime:         "20:00",
		SlotIntervalMinutes: 30,
		BufferMinutes:       10,
		StaffCapacity:       5,
		MinAdvanceHours:     1,
		MaxAdvanceDays:      30,
		AutoConfirm:         false,
	}
}

func TestGet(t *testing.T) {
	repo := &fakeConfigRepo{config: domain.DefaultSalonConfig()}
	service := NewService(repo, noopLogger{})

	resp, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.OpeningTime)
	assert.Equal(t, "18:00", resp.ClosingTime)
	assert.Equal(t, 15, resp.SlotIntervalMinutes)
	assert.True(t, resp.AutoConfirm)
}

func TestUpdate_Success(t *testing.T) {
	repo := &fakeConfigRepo{config: domain.DefaultSalonConfig()}
	service := NewService(repo, noopLogger{})

	resp, err := service.Update(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	assert.Equal(t, "10:00", resp.OpeningTime)
	assert.Equal(t, 30, resp.SlotIntervalMinutes)
	assert.False(t, resp.AutoConfirm)
	require.NotNil(t, repo.updated)
	assert.Equal(t, 5, repo.updated.StaffCapacity)
}

func TestUpdate_InvalidConfig(t *testing.T) {
	repo := &fakeConfigRepo{config: domain.DefaultSalonConfig()}
	service := NewService(repo, noopLogger{})

	cases := []struct {
		name   string
		mutate func(*models.UpdateConfigRequest)
	}{
		{"closing before opening", func(r *models.UpdateConfigRequest) { r.ClosingTime = "09:00" }},
		{"bad opening time", func(r *models.UpdateConfigRequest) { r.OpeningTime = "25:00" }},
		{"zero interval", func(r *models.UpdateConfigRequest) { r.SlotIntervalMinutes = 0 }},
		{"negative buffer", func(r *models.UpdateConfigRequest) { r.BufferMinutes = -1 }},
		{"zero capacity", func(r *models.UpdateConfigRequest) { r.StaffCapacity = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validUpdateRequest()
			tc.mutate(req)

			_, err := service.Update(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.updated)
		})
	}
}
