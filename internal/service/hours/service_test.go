package hours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

type fakeRepo struct {
	stored *domain.OperatingHours
	err    error
}

func (r *fakeRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.OperatingHours, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.stored == nil {
		return nil, hoursRepo.ErrHoursNotFound
	}
	return r.stored, nil
}

func (r *fakeRepo) Upsert(_ context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error) {
	if r.err != nil {
		return nil, r.err
	}
	saved := *h
	saved.UpdatedAt = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	r.stored = &saved
	return &saved, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func weekdaysNineToSix() domain.WeeklySchedule {
	var s domain.WeeklySchedule
	for d := domain.Monday; d <= domain.Friday; d++ {
		s[d] = domain.DayAvailability{IsOpen: true, Slots: []domain.TimeRange{{Start: "09:00", End: "18:00"}}}
	}
	return s
}

func TestGet_NotConfiguredIsClosed(t *testing.T) {
	s := NewService(&fakeRepo{}, nopLogger{})

	resp, err := s.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, resp.Configured)
	assert.Equal(t, int64(5), resp.BusinessID)
	for _, day := range resp.Schedule {
		assert.False(t, day.IsOpen)
	}
}

func TestGet_RepositoryError(t *testing.T) {
	s := NewService(&fakeRepo{err: errors.New("timeout")}, nopLogger{})

	_, err := s.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpsert(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, nopLogger{})
	ctx := context.Background()

	resp, err := s.Upsert(ctx, 5, &models.UpsertHoursRequest{
		Schedule:           weekdaysNineToSix(),
		AdvanceBookingDays: 30,
		MinAdvanceHours:    2,
	})
	require.NoError(t, err)
	assert.True(t, resp.Configured)
	require.NotNil(t, resp.UpdatedAt)

	got, err := s.Get(ctx, 5)
	require.NoError(t, err)
	assert.True(t, got.Schedule[domain.Monday].IsOpen)
	assert.False(t, got.Schedule[domain.Sunday].IsOpen)
	assert.Equal(t, 30, got.AdvanceBookingDays)
}

func TestUpsert_RejectsInvalidHours(t *testing.T) {
	inverted := weekdaysNineToSix()
	inverted[domain.Tuesday].Slots = []domain.TimeRange{{Start: "18:00", End: "09:00"}}

	malformed := weekdaysNineToSix()
	malformed[domain.Wednesday].Slots = []domain.TimeRange{{Start: "9am", End: "18:00"}}

	cases := []struct {
		name string
		req  models.UpsertHoursRequest
	}{
		{"start after end", models.UpsertHoursRequest{Schedule: inverted}},
		{"malformed time", models.UpsertHoursRequest{Schedule: malformed}},
		{"advance days too large", models.UpsertHoursRequest{Schedule: weekdaysNineToSix(), AdvanceBookingDays: 366}},
		{"negative notice", models.UpsertHoursRequest{Schedule: weekdaysNineToSix(), MinAdvanceHours: -1}},
		{"notice over a week", models.UpsertHoursRequest{Schedule: weekdaysNineToSix(), MinAdvanceHours: 169}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			s := NewService(repo, nopLogger{})

			_, err := s.Upsert(context.Background(), 5, &tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.stored)
		})
	}
}
