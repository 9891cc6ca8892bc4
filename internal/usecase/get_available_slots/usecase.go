package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	appointmentRepo AppointmentRepository
	hoursRepo       HoursRepository
	catalogClient   CatalogClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	hoursRepo HoursRepository,
	catalogClient CatalogClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		hoursRepo:       hoursRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute возвращает время начала, на которое можно записаться на услугу в указанную дату.
// Отсутствие свободного времени - пустой список, а не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Часы работы, если не настроены - бизнес закрыт
	hours, err := uc.hoursRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, hoursRepo.ErrHoursNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get operating hours for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
		}
		uc.logger.Info("GetAvailableSlots: business=%d has no operating hours, treating as closed", req.BusinessID)
		hours = domain.ClosedOperatingHours(req.BusinessID)
	}

	// 3. Услуга из каталога
	service, err := uc.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for business=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:            req.Date,
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.Duration,
		BufferMinutes:   service.BufferTime,
	}

	// 4. Закрытый день или дата вне окна - запросы к записям не нужны
	if !hours.ForDate(req.Date).IsOpen || !scheduling.NewBookingWindow(hours, now).AllowsDate(req.Date) {
		resp.Slots, err = scheduling.AvailableSlots(req.Date, service, hours, nil, now)
		if err != nil {
			return nil, uc.configurationError(req, err)
		}
		return resp, nil
	}

	// 5. Активные записи на эту дату
	filter := domain.AppointmentsFilter{
		BusinessID: &req.BusinessID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	}
	existing, err := uc.appointmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Генерация слотов
	resp.Slots, err = scheduling.AvailableSlots(req.Date, service, hours, existing, now)
	if err != nil {
		return nil, uc.configurationError(req, err)
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for business=%d on %s",
		len(resp.Slots), req.BusinessID, req.Date.Format(domain.DateFormat))

	return resp, nil
}

func (uc *UseCase) configurationError(req *Request, err error) error {
	uc.logger.Error("GetAvailableSlots: invalid configuration for business=%d service=%d: %v",
		req.BusinessID, req.ServiceID, err)
	return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
}
