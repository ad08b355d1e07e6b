package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"task-manager/internal/service"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		entry(r).WithError(err).Debug("decode register request")
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := s.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			writeUnauthorized(w, "Incorrect username or password")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserResponse(currentUser(r)))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user := currentUser(r)
	task, err := s.tasks.CreateTask(r.Context(), user, req.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task, user))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	tasks, err := s.tasks.ListTasks(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, newTaskResponse(&tasks[i], user))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	task, err := s.tasks.GetTask(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task, user))
}

func (s *Server) markDone(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	task, err := s.tasks.MarkDone(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task, user))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user := currentUser(r)
	task, err := s.tasks.UpdateTitle(r.Context(), user, id, req.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task, user))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	task, err := s.tasks.DeleteTask(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task, user))
}

// taskID parses the {id} path variable. Ids that overflow are treated as missing tasks.
func taskID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		writeError(w, http.StatusNotFound, "Task not found")
		return 0, false
	}
	return uint(id), true
}
