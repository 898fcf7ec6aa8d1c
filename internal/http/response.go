package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/httpx"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func JSONError(w http.ResponseWriter, statusCode int, code, detail string) {
	JSON(w, statusCode, errorBody{Error: code, Detail: detail})
}

// writeServiceError maps usecase sentinels onto the wire statuses. Role
// denials answer 403, missing rows 404, business-rule violations 400 and
// anything unexpected a logged 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		JSONError(w, http.StatusForbidden, "forbidden", "")
	case errors.Is(err, usecase.ErrNotFound):
		JSONError(w, http.StatusNotFound, "not_found", "")
	case errors.Is(err, usecase.ErrNoCopiesAvailable):
		JSONError(w, http.StatusBadRequest, "no_copies_available", err.Error())
	case errors.Is(err, usecase.ErrPrestamoDevuelto):
		JSONError(w, http.StatusForbidden, "prestamo_devuelto", err.Error())
	case errors.Is(err, usecase.ErrIntegrityConflict):
		JSONError(w, http.StatusBadRequest, "database integrity error", err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		JSONError(w, http.StatusUnauthorized, "invalid_credentials", "")
	case errors.Is(err, usecase.ErrCuentaInactiva):
		JSONError(w, http.StatusForbidden, "cuenta_inactiva", "")
	default:
		log.Printf("internal error: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		JSONError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// actorFrom builds the caller identity the services gate on. Requests
// without a valid token yield an unauthenticated Actor; the operation
// decides whether that is acceptable.
func actorFrom(r *http.Request) usecase.Actor {
	sub := httpx.UserIDFrom(r)
	if sub == "" {
		return usecase.Actor{}
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return usecase.Actor{}
	}
	return usecase.Actor{UserID: id, Role: httpx.RoleFrom(r), Authenticated: true}
}

// idParam extracts the {id} path value as int64.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
