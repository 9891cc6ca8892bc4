package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, nopLogger{})
}

func TestGetService(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/businesses/3/services/8", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":8,"business_id":3,"name":"Manicure","duration_minutes":45,"buffer_minutes":15,"price":25.5,"is_active":true}`))
	})

	svc, err := client.GetService(context.Background(), 3, 8)
	require.NoError(t, err)

	assert.Equal(t, "Manicure", svc.Name)
	assert.Equal(t, 45, svc.Duration)
	assert.Equal(t, 15, svc.BufferTime)
	assert.Equal(t, 60, svc.EffectiveDuration())
	assert.Equal(t, 25.5, svc.Price)
}

func TestGetService_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetService(context.Background(), 3, 8)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetService_InactiveOrForeign(t *testing.T) {
	for name, body := range map[string]string{
		"inactive": `{"id":8,"business_id":3,"name":"x","duration_minutes":30,"is_active":false}`,
		"foreign":  `{"id":8,"business_id":4,"name":"x","duration_minutes":30,"is_active":true}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.GetService(context.Background(), 3, 8)
			assert.ErrorIs(t, err, ErrServiceNotFound)
		})
	}
}

func TestGetService_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.GetService(context.Background(), 3, 8)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetService_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})

	_, err := client.GetService(context.Background(), 3, 8)
	assert.ErrorIs(t, err, ErrInternal)
}
