package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/pgerrors"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"business_id",
	"service_id",
	"customer_id",
	"scheduled_date",
	"scheduled_time",
	"duration_minutes",
	"buffer_minutes",
	"status",
	"service_name",
	"notes",
	"business_notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте передана активная транзакция, использует её.
// Пересечение с активной записью того же бизнеса отклоняется базой (ErrSlotConflict).
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"business_id",
			"service_id",
			"customer_id",
			"scheduled_date",
			"scheduled_time",
			"duration_minutes",
			"buffer_minutes",
			"status",
			"service_name",
			"notes",
		).
		Values(
			appt.BusinessID,
			appt.ServiceID,
			appt.CustomerID,
			appt.ScheduledDate.Format(domain.DateFormat),
			appt.ScheduledTime,
			appt.Duration,
			appt.BufferMinutes,
			appt.Status,
			appt.ServiceName,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, execError("Create - execute insert", err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// List получает записи с фильтрацией по бизнесу, клиенту, периоду и статусу.
// Внутри транзакции выборка на одну дату блокирует строки (FOR UPDATE).
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("List - execute query", err)
	}
	defer rows.Close()

	appts := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}

// UpdateStatus сохраняет переход статуса, только если в базе все еще статус from.
// Вместе со статусом пишутся поля отмены и заметки бизнеса, если они заданы.
func (r *Repository) UpdateStatus(ctx context.Context, appt *domain.Appointment, from domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("status", appt.Status).
		Set("updated_at", appt.UpdatedAt).
		Where(squirrel.Eq{"id": appt.ID, "status": from})

	if appt.Status == domain.StatusCancelled {
		builder = builder.
			Set("cancellation_reason", appt.CancellationReason).
			Set("cancelled_at", appt.CancelledAt)
	}
	if appt.BusinessNotes != nil {
		builder = builder.Set("business_notes", appt.BusinessNotes)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "UpdateStatus", query, args, ErrStatusChanged)
}

// UpdateBusinessNotes обновляет заметки бизнеса
func (r *Repository) UpdateBusinessNotes(ctx context.Context, id int64, notes *string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("business_notes", notes).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBusinessNotes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "UpdateBusinessNotes", query, args, ErrAppointmentNotFound)
}

func (r *Repository) execSingle(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notAffected error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notAffected
	}

	return nil
}

func listQuery(filter domain.AppointmentsFilter, inTx bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).From(table)

	if filter.BusinessID != nil {
		builder = builder.Where(squirrel.Eq{"business_id": *filter.BusinessID})
	}
	if filter.CustomerID != nil {
		builder = builder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"scheduled_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"scheduled_date": filter.EndDate.Format(domain.DateFormat)})
	}

	// Конкретный статус важнее флага отмененных
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.IsSingleDate() {
		builder = builder.OrderBy("scheduled_time ASC", "id ASC")
		if inTx {
			builder = builder.Suffix("FOR UPDATE")
		}
	} else {
		builder = builder.OrderBy("scheduled_date DESC", "scheduled_time DESC", "id DESC")
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		createdAt, updatedAt sql.NullTime
		cancelledAt          sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.ServiceID,
		&appt.CustomerID,
		&appt.ScheduledDate,
		&appt.ScheduledTime,
		&appt.Duration,
		&appt.BufferMinutes,
		&appt.Status,
		&appt.ServiceName,
		&appt.Notes,
		&appt.BusinessNotes,
		&appt.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		t := cancelledAt.Time
		appt.CancelledAt = &t
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// execError сохраняет ошибку драйвера в цепочке для конфликтов сериализации,
// чтобы менеджер транзакций мог повторить попытку
func execError(op string, err error) error {
	switch {
	case pgerrors.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrSlotConflict, op, err)
	case pgerrors.IsRetryable(err):
		return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}
