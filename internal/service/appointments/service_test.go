package appointments

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeRepo struct {
	mu     sync.Mutex
	items  map[int64]*domain.Appointment
	filter domain.AppointmentsFilter
	err    error
}

func newFakeRepo(items ...*domain.Appointment) *fakeRepo {
	r := &fakeRepo{items: make(map[int64]*domain.Appointment)}
	for _, a := range items {
		r.items[a.ID] = a
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Appointment, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, appt *domain.Appointment, from domain.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[appt.ID]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if stored.Status != from {
		return appointmentRepo.ErrStatusChanged
	}
	cp := *appt
	r.items[appt.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateBusinessNotes(_ context.Context, id int64, notes *string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stored.BusinessNotes = notes
	stored.UpdatedAt = at
	return nil
}

func (r *fakeRepo) status(id int64) domain.AppointmentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Status
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifier.Event
	err    error
}

func (n *fakeNotifier) Publish(_ context.Context, event notifier.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

type fakeMetrics struct {
	mu          sync.Mutex
	transitions []string
}

func (m *fakeMetrics) IncAppointmentTransition(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, from+"->"+to)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func pendingAppointment(id int64) *domain.Appointment {
	return &domain.Appointment{
		ID:            id,
		BusinessID:    10,
		ServiceID:     20,
		CustomerID:    30,
		ScheduledDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "10:00",
		Duration:      30,
		Status:        domain.StatusPending,
		BusinessNotes: ptr.Ptr("regular"),
	}
}

func newTestService(repo *fakeRepo) (*Service, *fakeNotifier, *fakeMetrics) {
	n := &fakeNotifier{}
	m := &fakeMetrics{}
	s := NewService(repo, n, m, nopLogger{})
	s.timeProvider = fixedTime{now: testNow}
	return s, n, m
}

func TestGetByID_Access(t *testing.T) {
	s, _, _ := newTestService(newFakeRepo(pendingAppointment(1)))
	ctx := context.Background()

	resp, err := s.GetByID(ctx, 1, 30, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.BusinessNotes, "customer must not see business notes")

	resp, err = s.GetByID(ctx, 1, 99, ptr.Ptr(int64(10)))
	require.NoError(t, err)
	assert.Equal(t, "regular", *resp.BusinessNotes)

	_, err = s.GetByID(ctx, 1, 99, ptr.Ptr(int64(11)))
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetByID(ctx, 2, 30, nil)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("connection reset")
	s, _, _ := newTestService(repo)

	_, err := s.GetByID(context.Background(), 1, 30, nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetCustomerAppointments(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	s, _, _ := newTestService(repo)
	ctx := context.Background()

	resp, err := s.GetCustomerAppointments(ctx, &models.GetCustomerAppointmentsRequest{UserID: 30, CustomerID: 30})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.True(t, repo.filter.IncludeCancelled)
	assert.Equal(t, int64(30), *repo.filter.CustomerID)

	_, err = s.GetCustomerAppointments(ctx, &models.GetCustomerAppointmentsRequest{UserID: 31, CustomerID: 30})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetCustomerAppointments(ctx, &models.GetCustomerAppointmentsRequest{UserID: 30, CustomerID: 30, Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBusinessAppointments_Filters(t *testing.T) {
	repo := newFakeRepo()
	s, _, _ := newTestService(repo)
	ctx := context.Background()
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	resp, err := s.GetBusinessAppointments(ctx, &models.GetBusinessAppointmentsRequest{BusinessID: 10, Date: &day})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	assert.True(t, repo.filter.IsSingleDate())
	assert.False(t, repo.filter.IncludeCancelled)

	_, err = s.GetBusinessAppointments(ctx, &models.GetBusinessAppointmentsRequest{
		BusinessID: 10,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, *repo.filter.Status)

	before := day.AddDate(0, 0, -1)
	_, err = s.GetBusinessAppointments(ctx, &models.GetBusinessAppointmentsRequest{BusinessID: 10, From: &day, To: &before})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.GetBusinessAppointments(ctx, &models.GetBusinessAppointmentsRequest{BusinessID: 10, Date: &day, From: &day})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransition_Lifecycle(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	s, n, m := newTestService(repo)
	ctx := context.Background()

	resp, err := s.Transition(ctx, 1, &models.TransitionRequest{BusinessID: 10, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	resp, err = s.Transition(ctx, 1, &models.TransitionRequest{BusinessID: 10, Status: "completed", BusinessNotes: ptr.Ptr("paid")})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "paid", *resp.BusinessNotes)
	assert.Equal(t, domain.StatusCompleted, repo.status(1))

	_, err = s.Transition(ctx, 1, &models.TransitionRequest{BusinessID: 10, Status: "cancelled"})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "completed")

	assert.Equal(t, []string{"pending->confirmed", "confirmed->completed"}, m.transitions)
	require.Len(t, n.events, 2)
	assert.Equal(t, notifier.EventConfirmed, n.events[0].Type)
	assert.Equal(t, notifier.EventCompleted, n.events[1].Type)
}

func TestTransition_Rejections(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	s, n, _ := newTestService(repo)
	ctx := context.Background()

	cases := []struct {
		name    string
		id      int64
		req     *models.TransitionRequest
		wantErr error
	}{
		{"unknown status", 1, &models.TransitionRequest{BusinessID: 10, Status: "archived"}, ErrInvalidInput},
		{"skip confirmation", 1, &models.TransitionRequest{BusinessID: 10, Status: "completed"}, ErrInvalidTransition},
		{"back to pending", 1, &models.TransitionRequest{BusinessID: 10, Status: "pending"}, ErrInvalidTransition},
		{"other business", 1, &models.TransitionRequest{BusinessID: 11, Status: "confirmed"}, ErrAccessDenied},
		{"missing", 2, &models.TransitionRequest{BusinessID: 10, Status: "confirmed"}, ErrAppointmentNotFound},
		{"long notes", 1, &models.TransitionRequest{
			BusinessID:    10,
			Status:        "confirmed",
			BusinessNotes: ptr.Ptr(strings.Repeat("n", domain.MaxBusinessNotesLength+1)),
		}, ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Transition(ctx, tc.id, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Equal(t, domain.StatusPending, repo.status(1))
	assert.Empty(t, n.events)
}

func TestTransition_ConcurrentUpdate(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	s, _, _ := newTestService(repo)
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		lost      int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Transition(ctx, 1, &models.TransitionRequest{BusinessID: 10, Status: "confirmed"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrConcurrentUpdate), errors.Is(err, ErrInvalidTransition):
				lost++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, lost)
	assert.Equal(t, domain.StatusConfirmed, repo.status(1))
}

func TestCancelByCustomer(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	s, n, _ := newTestService(repo)
	ctx := context.Background()

	_, err := s.CancelByCustomer(ctx, 1, &models.CancelRequest{UserID: 31})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.CancelByCustomer(ctx, 1, &models.CancelRequest{
		UserID: 30,
		Reason: ptr.Ptr(strings.Repeat("r", domain.MaxCancellationReasonLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := s.CancelByCustomer(ctx, 1, &models.CancelRequest{UserID: 30, Reason: ptr.Ptr("sick")})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "sick", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.True(t, resp.CancelledAt.Equal(testNow))
	assert.Nil(t, resp.BusinessNotes)

	_, err = s.CancelByCustomer(ctx, 1, &models.CancelRequest{UserID: 30})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.Len(t, n.events, 1)
	assert.Equal(t, notifier.EventCancelled, n.events[0].Type)
}

func TestTransition_NotifierFailureIsLogged(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	s, n, _ := newTestService(repo)
	n.err = errors.New("broker down")

	_, err := s.Transition(context.Background(), 1, &models.TransitionRequest{BusinessID: 10, Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.status(1))
}

func TestUpdateBusinessNotes(t *testing.T) {
	repo := newFakeRepo(pendingAppointment(1))
	s, _, _ := newTestService(repo)
	ctx := context.Background()

	resp, err := s.UpdateBusinessNotes(ctx, 1, &models.UpdateNotesRequest{BusinessID: 10, Notes: ptr.Ptr("vip")})
	require.NoError(t, err)
	assert.Equal(t, "vip", *resp.BusinessNotes)
	assert.True(t, resp.UpdatedAt.Equal(testNow))

	_, err = s.UpdateBusinessNotes(ctx, 1, &models.UpdateNotesRequest{BusinessID: 11, Notes: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.UpdateBusinessNotes(ctx, 1, &models.UpdateNotesRequest{
		BusinessID: 10,
		Notes:      ptr.Ptr(strings.Repeat("n", domain.MaxBusinessNotesLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
