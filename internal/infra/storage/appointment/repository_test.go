package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/pgerrors"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestListQuery_SingleDateInTx(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	filter := domain.AppointmentsFilter{
		BusinessID: ptr.Ptr(int64(3)),
		StartDate:  &date,
		EndDate:    &date,
	}

	query, args, err := listQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE business_id = $1 AND scheduled_date >= $2 AND scheduled_date <= $3 AND status <> $4")
	assert.Contains(t, query, "ORDER BY scheduled_time ASC, id ASC FOR UPDATE")
	assert.Equal(t, []interface{}{int64(3), "2026-10-19", "2026-10-19", domain.StatusCancelled}, args)

	query, _, err = listQuery(filter, false).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")
}

func TestListQuery_CustomerHistory(t *testing.T) {
	status := domain.StatusConfirmed
	filter := domain.AppointmentsFilter{
		CustomerID: ptr.Ptr(int64(9)),
		Status:     &status,
	}

	query, args, err := listQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE customer_id = $1 AND status = $2")
	assert.Contains(t, query, "ORDER BY scheduled_date DESC, scheduled_time DESC, id DESC")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(9), domain.StatusConfirmed}, args)
}

func TestListQuery_IncludeCancelled(t *testing.T) {
	query, _, err := listQuery(domain.AppointmentsFilter{BusinessID: ptr.Ptr(int64(1)), IncludeCancelled: true}, false).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "status <>")
}

func TestExecError(t *testing.T) {
	err := execError("Create", &pgconn.PgError{Code: pgerrors.CodeExclusionViolation})
	assert.ErrorIs(t, err, ErrSlotConflict)

	err = execError("List", &pq.Error{Code: pgerrors.CodeSerializationFailure})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, pgerrors.IsRetryable(err))

	err = execError("List", errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.False(t, pgerrors.IsRetryable(err))
}
