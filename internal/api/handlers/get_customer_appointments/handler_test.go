package get_customer_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type fakeService struct {
	got *models.GetCustomerAppointmentsRequest
	err error
}

func (f *fakeService) GetCustomerAppointments(_ context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(svc *fakeService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/customers/{customerId}/appointments", NewHandler(svc, nopLogger{}).Handle)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = r.WithContext(middleware.WithUserID(r.Context(), 7))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := get(svc, "/customers/7/appointments?status=confirmed")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"appointments":[]}`, rec.Body.String())
	assert.Equal(t, int64(7), svc.got.UserID)
	assert.Equal(t, "confirmed", *svc.got.Status)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/customers/x/appointments").Code)
	assert.Equal(t, http.StatusForbidden, get(&fakeService{err: appointments.ErrAccessDenied}, "/customers/8/appointments").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{err: appointments.ErrInvalidInput}, "/customers/7/appointments?status=x").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: appointments.ErrInternal}, "/customers/7/appointments").Code)
}
