package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestUpsertQuery(t *testing.T) {
	h := domain.ClosedOperatingHours(12)
	h.AdvanceBookingDays = 30
	h.MinAdvanceHours = 2

	query, args, err := upsertQuery(h).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO operating_hours (business_id,schedule,advance_booking_days,min_advance_hours) VALUES ($1,$2,$3,$4)")
	assert.Contains(t, query, "ON CONFLICT (business_id) DO UPDATE SET")
	assert.Contains(t, query, "RETURNING created_at, updated_at")
	require.Len(t, args, 4)
	assert.Equal(t, int64(12), args[0])
	assert.Equal(t, h.Schedule, args[1])
	assert.Equal(t, 30, args[2])
	assert.Equal(t, 2, args[3])
}
