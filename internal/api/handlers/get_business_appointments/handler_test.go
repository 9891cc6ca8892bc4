package get_business_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type fakeService struct {
	got *models.GetBusinessAppointmentsRequest
	err error
}

func (f *fakeService) GetBusinessAppointments(_ context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1}}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(svc *fakeService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/businesses/{businessId}/appointments", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(10, url.Values{
		"from":             {"2026-10-01"},
		"to":               {"2026-10-31"},
		"status":           {"pending"},
		"includeCancelled": {"true"},
	})
	require.NoError(t, err)
	assert.Nil(t, req.Date)
	assert.Equal(t, "2026-10-01", req.From.Format("2006-01-02"))
	assert.Equal(t, "2026-10-31", req.To.Format("2006-01-02"))
	assert.Equal(t, "pending", *req.Status)
	assert.True(t, req.IncludeCancelled)

	_, err = ToServiceRequest(10, url.Values{"date": {"tomorrow"}})
	assert.Error(t, err)

	_, err = ToServiceRequest(10, url.Values{"includeCancelled": {"maybe"}})
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := get(svc, "/businesses/10/appointments?date=2026-10-19")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), svc.got.BusinessID)
	require.NotNil(t, svc.got.Date)

	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/businesses/0/appointments").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/businesses/10/appointments?from=bad").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{err: appointments.ErrInvalidInput}, "/businesses/10/appointments").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: appointments.ErrInternal}, "/businesses/10/appointments").Code)
}
