package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"agartha/internal/shared"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestLogger logs one line per request once the handler is done.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// allowAnyOrigin lets browser clients on other origins call the API.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// requirePassPhrase admits admin requests whose body is the configured pass
// phrase. The body is restored for the handler.
func (a *API) requirePassPhrase(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r)
		if err != nil || !a.Svc.passPhraseMatches(bytes.TrimSpace(body)) {
			writeJSON(w, http.StatusUnauthorized, shared.ErrorResponse{Error: shared.MsgUnauthorized})
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (a *API) requireDevelopment(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Svc.Cfg.Development() {
			writeJSON(w, http.StatusUnauthorized, shared.ErrorResponse{Error: shared.MsgRequestNotAllowed})
			return
		}
		next.ServeHTTP(w, r)
	})
}
