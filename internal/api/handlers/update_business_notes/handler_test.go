package update_business_notes

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
	got *models.UpdateNotesRequest
	err error
}

func (f *fakeService) UpdateBusinessNotes(_ context.Context, id int64, req *models.UpdateNotesRequest) (*models.AppointmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, BusinessNotes: req.Notes}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patch(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/businesses/{businessId}/appointments/{appointmentId}/notes", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/businesses/10/appointments/5/notes", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := patch(svc, `{"businessNotes":"vip"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vip", *svc.got.Notes)
	assert.Equal(t, int64(10), svc.got.BusinessID)

	svc = &fakeService{}
	rec = patch(svc, `{"businessNotes":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Notes)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, patch(&fakeService{}, `{"businessNotes":"`+strings.Repeat("n", 1001)+`"}`).Code)
	assert.Equal(t, http.StatusNotFound, patch(&fakeService{err: appointments.ErrAppointmentNotFound}, `{}`).Code)
	assert.Equal(t, http.StatusForbidden, patch(&fakeService{err: appointments.ErrAccessDenied}, `{}`).Code)
	assert.Equal(t, http.StatusInternalServerError, patch(&fakeService{err: appointments.ErrInternal}, `{}`).Code)
}
