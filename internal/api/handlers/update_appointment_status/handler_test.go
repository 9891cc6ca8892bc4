package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type fakeService struct {
	gotID int64
	got   *models.TransitionRequest
	err   error
}

func (f *fakeService) Transition(_ context.Context, id int64, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	f.gotID = id
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: req.Status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patch(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/businesses/{businessId}/appointments/{appointmentId}/status", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Confirm(t *testing.T) {
	svc := &fakeService{}
	rec := patch(svc, "/businesses/10/appointments/5/status", `{"status":"confirmed","businessNotes":"regular"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	assert.Equal(t, int64(10), svc.got.BusinessID)
	assert.Equal(t, "confirmed", svc.got.Status)
	assert.Equal(t, "regular", *svc.got.BusinessNotes)
}

func TestHandle_Errors(t *testing.T) {
	const target = "/businesses/10/appointments/5/status"
	const body = `{"status":"completed"}`

	cases := []struct {
		name   string
		target string
		body   string
		err    error
		want   int
	}{
		{"bad business", "/businesses/x/appointments/5/status", body, nil, http.StatusBadRequest},
		{"bad appointment", "/businesses/10/appointments/0/status", body, nil, http.StatusBadRequest},
		{"unknown status", target, `{"status":"archived"}`, nil, http.StatusBadRequest},
		{"missing status", target, `{}`, nil, http.StatusBadRequest},
		{"not found", target, body, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"other business", target, body, appointments.ErrAccessDenied, http.StatusForbidden},
		{"invalid transition", target, body, appointments.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"concurrent", target, body, appointments.ErrConcurrentUpdate, http.StatusConflict},
		{"internal", target, body, appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tc.err}, tc.target, tc.body)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
