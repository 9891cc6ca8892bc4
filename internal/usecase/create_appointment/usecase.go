package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	hoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// Причины отказа для метрики booking_conflicts_total
const (
	conflictSlotTaken     = "slot_taken"
	conflictConstraint    = "constraint"
	conflictSerialization = "serialization"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	hoursRepo       HoursRepository
	catalogClient   CatalogClient
	txManager       TransactionManager
	locker          Locker
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	hoursRepo HoursRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	locker Locker,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		hoursRepo:       hoursRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		locker:          locker,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute создает запись в статусе pending.
// Проверка свободного времени и вставка выполняются под блокировкой (бизнес, дата)
// в сериализуемой транзакции, поэтому из двух одновременных запросов на пересекающееся
// время успешен максимум один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, business=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Услуга из каталога
	service, err := uc.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found for business=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Часы работы, если не настроены - бизнес закрыт
	hours, err := uc.hoursRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, hoursRepo.ErrHoursNotFound) {
			uc.logger.Error("CreateAppointment: failed to get operating hours: %v", err)
			return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
		}
		hours = domain.ClosedOperatingHours(req.BusinessID)
	}

	// 4. Быстрая проверка без чтения записей: рабочий день, окно бронирования, сетка слотов
	if err := scheduling.CheckSlot(req.Date, req.StartTime, service, hours, nil, now); err != nil {
		uc.logger.Warn("CreateAppointment: %s %s rejected: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
		return nil, mapSlotError(err)
	}

	// 5. Блокировка (бизнес, дата) внутри процесса
	unlock, err := uc.locker.Lock(ctx, lockKey(req.BusinessID, req.Date))
	if err != nil {
		uc.logger.Warn("CreateAppointment: lock wait aborted: %v", err)
		return nil, fmt.Errorf("%w: lock wait aborted: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Appointment

	// 6. Повторная проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		filter := domain.AppointmentsFilter{
			BusinessID: &req.BusinessID,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		}

		// 6.1. Активные записи на дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.List(txCtx, filter)
		if err != nil {
			return err
		}

		// 6.2. Время должно входить в доступные слоты с учетом существующих записей
		if err := scheduling.CheckSlot(req.Date, req.StartTime, service, hours, existing, now); err != nil {
			return err
		}

		// 6.3. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			BusinessID:    req.BusinessID,
			ServiceID:     req.ServiceID,
			CustomerID:    req.CustomerID,
			ScheduledDate: domain.DateOnly(req.Date),
			ScheduledTime: req.StartTime,
			Duration:      service.Duration,
			BufferMinutes: service.BufferTime,
			Status:        domain.StatusPending,
			ServiceName:   service.Name,
			Notes:         req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.transactionError(req, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	uc.metrics.IncAppointmentCreated()

	// 7. Уведомление после коммита, ошибка доставки не отменяет запись
	if err := uc.notifier.Publish(ctx, notifier.NewEvent(notifier.EventCreated, result, now)); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%d: %v", result.ID, err)
	}

	return toResponse(result), nil
}

func (uc *UseCase) transactionError(req *Request, err error) error {
	switch {
	case errors.Is(err, scheduling.ErrSlotTaken):
		uc.logger.Warn("CreateAppointment: slot %s %s already taken", req.Date.Format(domain.DateFormat), req.StartTime)
		uc.metrics.IncBookingConflict(conflictSlotTaken)
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)

	case errors.Is(err, appointmentRepo.ErrSlotConflict):
		uc.logger.Warn("CreateAppointment: slot %s %s rejected by storage constraint", req.Date.Format(domain.DateFormat), req.StartTime)
		uc.metrics.IncBookingConflict(conflictConstraint)
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)

	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("CreateAppointment: concurrent booking for business=%d on %s: %v",
			req.BusinessID, req.Date.Format(domain.DateFormat), err)
		uc.metrics.IncBookingConflict(conflictSerialization)
		return fmt.Errorf("%w: concurrent booking, retry: %v", ErrSlotNotAvailable, err)

	case errors.Is(err, scheduling.ErrDayClosed),
		errors.Is(err, scheduling.ErrOutsideBookingWindow),
		errors.Is(err, scheduling.ErrNotBookable):
		return mapSlotError(err)

	default:
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}
}

func lockKey(businessID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", businessID, date.Format(domain.DateFormat))
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		BusinessID:      appt.BusinessID,
		ServiceID:       appt.ServiceID,
		CustomerID:      appt.CustomerID,
		ScheduledDate:   appt.ScheduledDate,
		ScheduledTime:   appt.ScheduledTime,
		DurationMinutes: appt.Duration,
		BufferMinutes:   appt.BufferMinutes,
		Status:          string(appt.Status),
		ServiceName:     appt.ServiceName,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
