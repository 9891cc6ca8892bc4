package hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

// Service сервис для работы с часами работы бизнеса
type Service struct {
	hoursRepo HoursRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса часов работы
func NewService(hoursRepo HoursRepository, logger Logger) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		logger:    logger,
	}
}

// Get получает часы работы бизнеса
// Если бизнес ничего не настроил, возвращается расписание без рабочих дней
func (s *Service) Get(ctx context.Context, businessID int64) (*models.HoursResponse, error) {
	s.logger.Info("Get: fetching operating hours for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	h, err := s.hoursRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			s.logger.Info("Get: business=%d has no operating hours, treating as closed", businessID)
			return models.FromDomainHours(domain.ClosedOperatingHours(businessID), false), nil
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHours(h, true), nil
}

// Upsert создает или заменяет часы работы бизнеса
func (s *Service) Upsert(ctx context.Context, businessID int64, req *models.UpsertHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Upsert: saving operating hours for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	h := req.ToDomain(businessID)
	if err := h.Validate(); err != nil {
		s.logger.Warn("Upsert: invalid operating hours for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.hoursRepo.Upsert(ctx, h)
	if err != nil {
		s.logger.Error("Upsert: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved operating hours for business=%d", businessID)
	return models.FromDomainHours(saved, true), nil
}
