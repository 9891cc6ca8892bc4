package update_operating_hours

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

type fakeService struct {
	gotBusiness int64
	got         *models.UpsertHoursRequest
	err         error
}

func (f *fakeService) Upsert(_ context.Context, businessID int64, req *models.UpsertHoursRequest) (*models.HoursResponse, error) {
	f.gotBusiness = businessID
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.HoursResponse{BusinessID: businessID, Schedule: req.Schedule, Configured: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func put(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/businesses/{businessId}/operating-hours", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/businesses/10/operating-hours", strings.NewReader(body)))
	return rec
}

const validBody = `{
	"schedule": {"monday": {"isOpen": true, "slots": [{"start": "09:00", "end": "18:00"}]}},
	"advanceBookingDays": 30,
	"minAdvanceHours": 2
}`

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := put(svc, validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), svc.gotBusiness)
	assert.True(t, svc.got.Schedule[domain.Monday].IsOpen)
	assert.False(t, svc.got.Schedule[domain.Tuesday].IsOpen)
	assert.Equal(t, 30, svc.got.AdvanceBookingDays)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, put(&fakeService{}, `{"advanceBookingDays": 400}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(&fakeService{}, `{"schedule": {"funday": {}}}`).Code)

	invalid := fmt.Errorf("%w: start must be before end", hours.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, put(&fakeService{err: invalid}, validBody).Code)
	assert.Equal(t, http.StatusInternalServerError, put(&fakeService{err: hours.ErrInternal}, validBody).Code)
}
