package hours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "operating_hours"

// upsertSuffix обновляет существующую строку бизнеса, сохраняя created_at
const upsertSuffix = `ON CONFLICT (business_id) DO UPDATE SET
	schedule = EXCLUDED.schedule,
	advance_booking_days = EXCLUDED.advance_booking_days,
	min_advance_hours = EXCLUDED.min_advance_hours,
	updated_at = NOW()
RETURNING created_at, updated_at`

// Repository репозиторий для работы с часами работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает часы работы бизнеса
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"schedule",
		"advance_booking_days",
		"min_advance_hours",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		h                    domain.OperatingHours
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.BusinessID,
		&h.Schedule,
		&h.AdvanceBookingDays,
		&h.MinAdvanceHours,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan operating hours: %v", ErrScanRow, err)
	}

	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return &h, nil
}

// Upsert создает или полностью заменяет часы работы бизнеса
func (r *Repository) Upsert(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery(h).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return h, nil
}

func upsertQuery(h *domain.OperatingHours) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns(
			"business_id",
			"schedule",
			"advance_booking_days",
			"min_advance_hours",
		).
		Values(
			h.BusinessID,
			h.Schedule,
			h.AdvanceBookingDays,
			h.MinAdvanceHours,
		).
		Suffix(upsertSuffix)
}
