// Package api exposes the task manager over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"task-manager/internal/service"
)

// Server wires HTTP routes to the auth and task services.
type Server struct {
	auth  *service.AuthService
	tasks *service.TaskService
	db    *gorm.DB
}

func NewServer(auth *service.AuthService, tasks *service.TaskService, db *gorm.DB) *Server {
	return &Server{auth: auth, tasks: tasks, db: db}
}

// Handler builds the router. Literal paths are registered before the {id} routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogger)
	r.NotFoundHandler = requestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	}))
	r.MethodNotAllowedHandler = requestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}))

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.HandleFunc("/register/", s.register).Methods(http.MethodPost)
	r.HandleFunc("/token/", s.login).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.requireUser)
	authed.HandleFunc("/user/me/", s.me).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/", s.createTask).Methods(http.MethodPost)
	authed.HandleFunc("/", s.listTasks).Methods(http.MethodGet)
	authed.HandleFunc("/{id:[0-9]+}/", s.getTask).Methods(http.MethodGet)
	authed.HandleFunc("/{id:[0-9]+}/", s.deleteTask).Methods(http.MethodDelete)
	authed.HandleFunc("/{id:[0-9]+}/done/", s.markDone).Methods(http.MethodPatch)
	authed.HandleFunc("/{id:[0-9]+}/update/", s.updateTask).Methods(http.MethodPut)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		entry(r).WithError(err).Error("health check failed")
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
