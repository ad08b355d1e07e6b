package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"task-manager/internal/service"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorResponse{Detail: detail})
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}

// writeServiceError translates domain errors into status codes. Unknown errors are logged
// and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeUnauthorized(w, "Not Authorized")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		entry(r).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// decodeJSON reads a JSON body into dst, rejecting unknown trailing data.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
