package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestLogging пишет в лог метод, путь, код и длительность каждого запроса
func RequestLogging(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			switch {
			case recorder.status >= http.StatusInternalServerError:
				log.Error("%s %s - %d in %s", r.Method, r.URL.Path, recorder.status, duration)
			case recorder.status >= http.StatusBadRequest:
				log.Warn("%s %s - %d in %s", r.Method, r.URL.Path, recorder.status, duration)
			default:
				log.Info("%s %s - %d in %s", r.Method, r.URL.Path, recorder.status, duration)
			}
		})
	}
}
