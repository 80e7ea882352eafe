package start_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingService struct {
	started []int64
	err     error
}

func (s *fakeBookingService) Start(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.started = append(s.started, id)
	return nil
}

func newRouter(service BookingService) *mux.Router {
	h := NewHandler(service, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/start", h.Handle).Methods(http.MethodPatch)
	return r
}

func TestHandle_StartsBooking(t *testing.T) {
	service := &fakeBookingService{}
	r := newRouter(service)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/5/start", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{5}, service.started)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	service := &fakeBookingService{}
	r := newRouter(service)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/abc/start", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, service.started)
}

func TestHandle_NotFound(t *testing.T) {
	r := newRouter(&fakeBookingService{err: bookings.ErrBookingNotFound})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/99/start", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_AlreadyFinal(t *testing.T) {
	r := newRouter(&fakeBookingService{err: bookings.ErrAlreadyFinal})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/5/start", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
