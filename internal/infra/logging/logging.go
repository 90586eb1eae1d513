package logging

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type ILogger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Infoln(args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	WithField(key string, value any) *logrus.Entry
}

type requestIDKey struct{}

func SetupLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// SetLevel keeps the current level when the name can't be parsed.
func SetLevel(logger *logrus.Logger, name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logger.Warningf("Unknown log level %q, staying at %s", name, logger.GetLevel())
		return
	}
	logger.SetLevel(level)
}

func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func Middleware(logger ILogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		logReqFn := func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(ww, r.WithContext(ctx))
			logger.WithField("request_id", id).Infof(
				"%s %s -> %d, %d bytes in %s",
				r.Method,
				r.RequestURI,
				ww.Status(),
				ww.BytesWritten(),
				time.Since(start),
			)
		}
		return http.HandlerFunc(logReqFn)
	}
}
