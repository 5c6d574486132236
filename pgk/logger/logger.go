package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type (
	responseData struct {
		status int
		size   int
	}

	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func New() (*zap.SugaredLogger, error) {
	lg, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return lg.Sugar(), nil
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// LoggingMiddleware - логирует uri, метод, статус, размер ответа и длительность запроса
func LoggingMiddleware(lg *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rd := &responseData{
				status: http.StatusOK,
				size:   0,
			}
			lw := &loggingResponseWriter{
				ResponseWriter: w,
				responseData:   rd,
			}

			next.ServeHTTP(lw, r)

			lg.Infof("request-> uri: %s, method: %s, status: %d, size: %d, duration: %s",
				r.RequestURI,
				r.Method,
				rd.status,
				rd.size,
				time.Since(start),
			)
		})
	}
}
