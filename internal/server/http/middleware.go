package httpserver

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"
)

// acceptedSchemes are the Authorization header schemes treated as carrying a
// credential. Any other scheme means "no credential supplied".
var acceptedSchemes = []string{"bearer", "token"}

// bearerToken extracts the credential from "Authorization: <Scheme> <token>".
func bearerToken(r *http.Request) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", false
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	scheme := strings.ToLower(parts[0])
	for _, s := range acceptedSchemes {
		if scheme == s {
			tok := strings.TrimSpace(parts[1])
			return tok, tok != ""
		}
	}
	return "", false
}

// requireAuth is the authorization gate for actions declared auth=required.
// It resolves the credential before the handler runs and aborts with 401 on
// any failure, so no repository call can happen without a trusted identity.
// The resolved identity lives in the request context for this call only.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, ok := bearerToken(r)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "missing credentials")
			return
		}
		id, err := s.auth.Resolve(r.Context(), tok)
		if err != nil {
			writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

// logging returns middleware for structured request logging. Only metadata is
// logged, never payloads.
func logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("dur", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// recoverPanic returns middleware that recovers from handler panics.
func recoverPanic(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic",
						zap.Any("reason", rec),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", r.URL.Path),
					)
					writeErrorMessage(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
