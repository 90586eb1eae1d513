package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareGeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger()
	logger.SetOutput(&buf)

	var seen string
	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "GET /books -> 418")
	assert.Contains(t, buf.String(), "request_id="+seen)
}

func TestMiddlewareKeepsIncomingRequestID(t *testing.T) {
	logger := SetupLogger()
	logger.SetOutput(&bytes.Buffer{})

	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestSetLevel(t *testing.T) {
	logger := SetupLogger()
	logger.SetOutput(&bytes.Buffer{})

	SetLevel(logger, "debug")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	SetLevel(logger, "loud")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}
