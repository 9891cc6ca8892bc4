package appointments

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видит её клиент либо бизнес, от имени которого действует пользователь
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, actingBusinessID *int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	forBusiness := actingBusinessID != nil && *actingBusinessID == appt.BusinessID
	if appt.CustomerID != userID && !forBusiness {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt, forBusiness), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	if req.UserID != req.CustomerID {
		s.logger.Warn("GetCustomerAppointments: user=%d cannot read appointments of customer=%d", req.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
		return nil, err
	}

	filter := domain.AppointmentsFilter{
		CustomerID:       &req.CustomerID,
		Status:           status,
		IncludeCancelled: true,
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: found %d appointments for customer=%d", len(list), req.CustomerID)
	return models.FromDomainAppointmentList(list, false), nil
}

// GetBusinessAppointments получает записи бизнеса за день или период
func (s *Service) GetBusinessAppointments(ctx context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBusinessAppointments: fetching appointments for business=%d", req.BusinessID)

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetBusinessAppointments: invalid status=%s for business=%d", *req.Status, req.BusinessID)
		return nil, err
	}

	filter := domain.AppointmentsFilter{
		BusinessID:       &req.BusinessID,
		Status:           status,
		IncludeCancelled: req.IncludeCancelled,
	}

	switch {
	case req.Date != nil:
		if req.From != nil || req.To != nil {
			return nil, fmt.Errorf("%w: date cannot be combined with from/to", ErrInvalidInput)
		}
		filter.StartDate = req.Date
		filter.EndDate = req.Date
	default:
		if req.From != nil && req.To != nil && req.From.After(*req.To) {
			s.logger.Warn("GetBusinessAppointments: from is after to for business=%d", req.BusinessID)
			return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
		}
		filter.StartDate = req.From
		filter.EndDate = req.To
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: found %d appointments for business=%d", len(list), req.BusinessID)
	return models.FromDomainAppointmentList(list, true), nil
}

// Transition меняет статус записи со стороны бизнеса
// Допустимые переходы определяет жизненный цикл записи
func (s *Service) Transition(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: moving appointment id=%d to status=%s by business=%d", id, req.Status, req.BusinessID)

	to, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}
	if err := validateText("businessNotes", req.BusinessNotes, domain.MaxBusinessNotesLength); err != nil {
		return nil, err
	}
	if err := validateText("cancellationReason", req.CancellationReason, domain.MaxCancellationReasonLength); err != nil {
		return nil, err
	}

	appt, err := s.load(ctx, "Transition", id)
	if err != nil {
		return nil, err
	}

	if appt.BusinessID != req.BusinessID {
		s.logger.Warn("Transition: appointment id=%d does not belong to business=%d", id, req.BusinessID)
		return nil, ErrAccessDenied
	}

	if req.BusinessNotes != nil {
		appt.BusinessNotes = req.BusinessNotes
	}
	if to == domain.StatusCancelled {
		appt.CancellationReason = req.CancellationReason
	}

	if err := s.apply(ctx, "Transition", appt, to); err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt, true), nil
}

// CancelByCustomer отменяет запись по запросу клиента
// Клиент может отменить только свою запись
func (s *Service) CancelByCustomer(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("CancelByCustomer: cancelling appointment id=%d by user=%d", id, req.UserID)

	if err := validateText("reason", req.Reason, domain.MaxCancellationReasonLength); err != nil {
		return nil, err
	}

	appt, err := s.load(ctx, "CancelByCustomer", id)
	if err != nil {
		return nil, err
	}

	if appt.CustomerID != req.UserID {
		s.logger.Warn("CancelByCustomer: access denied for user=%d to appointment id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	appt.CancellationReason = req.Reason

	if err := s.apply(ctx, "CancelByCustomer", appt, domain.StatusCancelled); err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt, false), nil
}

// UpdateBusinessNotes обновляет заметки бизнеса к записи
func (s *Service) UpdateBusinessNotes(ctx context.Context, id int64, req *models.UpdateNotesRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateBusinessNotes: updating notes of appointment id=%d by business=%d", id, req.BusinessID)

	if err := validateText("notes", req.Notes, domain.MaxBusinessNotesLength); err != nil {
		return nil, err
	}

	appt, err := s.load(ctx, "UpdateBusinessNotes", id)
	if err != nil {
		return nil, err
	}

	if appt.BusinessID != req.BusinessID {
		s.logger.Warn("UpdateBusinessNotes: appointment id=%d does not belong to business=%d", id, req.BusinessID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	if err := s.appointmentRepo.UpdateBusinessNotes(ctx, id, req.Notes, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateBusinessNotes: appointment id=%d disappeared", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateBusinessNotes: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateBusinessNotes - repository error: %v", ErrInternal, err)
	}

	appt.BusinessNotes = req.Notes
	appt.UpdatedAt = now

	s.logger.Info("UpdateBusinessNotes: successfully updated appointment id=%d", id)
	return models.FromDomainAppointment(appt, true), nil
}

// load получает запись и переводит ошибки репозитория в ошибки сервиса
func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// apply проводит запись через жизненный цикл и сохраняет с проверкой прежнего статуса
func (s *Service) apply(ctx context.Context, op string, appt *domain.Appointment, to domain.AppointmentStatus) error {
	from := appt.Status
	now := s.timeProvider.Now()

	if err := appt.Apply(to, now); err != nil {
		s.logger.Warn("%s: appointment id=%d rejected %s -> %s: %v", op, appt.ID, from, to, err)
		if errors.Is(err, domain.ErrInvalidTransition) {
			return fmt.Errorf("%w: current status is %s", ErrInvalidTransition, from)
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appt, from); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			s.logger.Warn("%s: appointment id=%d changed concurrently, expected status=%s", op, appt.ID, from)
			return ErrConcurrentUpdate
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appt.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if s.metrics != nil {
		s.metrics.IncAppointmentTransition(string(from), string(to))
	}

	event := notifier.NewEvent(notifier.EventTypeFor(to), appt, now)
	if err := s.notifier.Publish(ctx, event); err != nil {
		// событие не критично, переход уже сохранен
		s.logger.Error("%s: failed to publish %s for appointment id=%d: %v", op, event.Type, appt.ID, err)
	}

	s.logger.Info("%s: appointment id=%d moved %s -> %s", op, appt.ID, from, to)
	return nil
}

func parseStatus(raw *string) (*domain.AppointmentStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, err := models.ToDomainStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *raw)
	}
	return &status, nil
}

func validateText(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > max {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, max)
	}
	return nil
}
