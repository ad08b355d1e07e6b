package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"task-manager/internal/logging"
	"task-manager/internal/model"
	"task-manager/internal/service"
)

type contextKey string

const (
	userKey  contextKey = "user"
	entryKey contextKey = "log-entry"
)

const requestIDHeader = "X-Request-ID"

// requireUser runs the bearer-token flow and stores the resolved user in the context.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			entry(r).Debug("authorization header missing or malformed")
			writeUnauthorized(w, "Not Authorized")
			return
		}

		user, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				entry(r).WithError(err).Debug("token rejected")
				writeUnauthorized(w, "Not Authorized")
				return
			}
			entry(r).WithError(err).Error("resolve user")
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, entryKey, entry(r).WithField("user_id", user.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// currentUser returns the user injected by requireUser.
func currentUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(userKey).(*model.User)
	return user
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		log := logging.WithComponent("http").WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), entryKey, log)))

		log.WithFields(logrus.Fields{
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request handled")
	})
}

// entry returns the request-scoped log entry.
func entry(r *http.Request) *logrus.Entry {
	if e, ok := r.Context().Value(entryKey).(*logrus.Entry); ok {
		return e
	}
	return logging.WithComponent("http")
}
