package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"farmhub/internal/mw"
)

// Validation-only paths: the request is rejected before any service call, so
// the handlers can be exercised with a nil service.

func asUser(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), mw.UserCtxKey, userID)
	return req.WithContext(ctx)
}

func TestCreateOrderHandler_BadRequests(t *testing.T) {
	h := CreateOrderHandler(nil)

	t.Run("invalid json", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{")), "c1")
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing farmer_id", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"products":{"BUTTER":2},"total":"10.00"}`
		req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)), "c1")
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterHandler_BadRequests(t *testing.T) {
	h := RegisterHandler(nil, "secret")

	t.Run("missing credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"role":"farmer","login":"","password":""}`
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"role":"wizard","login":"a","password":"b"}`
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin self-registration refused", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"role":"admin","login":"a","password":"b"}`
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body)))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRegisterAnimalHandler_BadRequests(t *testing.T) {
	h := RegisterAnimalHandler(nil)

	w := httptest.NewRecorder()
	body := `{"tag":"","species":"cow"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/animals", strings.NewReader(body)), "f1")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessageHandler_BadRequests(t *testing.T) {
	h := SendMessageHandler(nil)

	w := httptest.NewRecorder()
	body := `{"recipient_id":"","body":"hi"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body)), "u1")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookAppointmentHandler_BadRequests(t *testing.T) {
	h := BookAppointmentHandler(nil, nil)

	w := httptest.NewRecorder()
	body := `{"vet_id":"v1","animal_id":""}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body)), "f1")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
