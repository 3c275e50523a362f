package salonconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/internal/service/salonconfig/models"
)

// Service сервис для работы с конфигурацией салона
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Get получает текущую конфигурацию салона
func (s *Service) Get(ctx context.Context) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching salon config")

	config, err := s.configRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// Update заменяет конфигурацию салона целиком.
// Новые параметры действуют только на будущие запросы, уже созданные
// записи не пересчитываются.
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating salon config: hours=%s-%s, interval=%d, buffer=%d, capacity=%d",
		req.OpeningTime, req.ClosingTime, req.SlotIntervalMinutes, req.BufferMinutes, req.StaffCapacity)

	config := req.ToDomain()
	if err := config.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			s.logger.Warn("Update: validation failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("Update: validation error: %v", err)
		return nil, fmt.Errorf("%w: Update - validation error: %v", ErrInternal, err)
	}

	updated, err := s.configRepo.Update(ctx, config)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: salon config updated")
	return models.FromDomainConfig(updated), nil
}
