package watchapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poundbot/gamewatch/types"
)

func handleError(w http.ResponseWriter, r *http.Request, restError types.RESTError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(restError.StatusCode)
	if err := json.NewEncoder(w).Encode(restError); err != nil {
		logWithRequest(r).WithError(err).Error("Could not encode error")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logWithRequest(r).WithError(err).Error("Could not encode response")
	}
}

// errorStatus maps failure kinds to HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, types.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrUnreachable):
		return http.StatusBadGateway
	case errors.Is(err, types.ErrTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func handleRegistryError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	rLog := logWithRequest(r).WithError(err)
	if status == http.StatusInternalServerError {
		rLog.Error("Registry failure")
	} else {
		rLog.Info("Request failed")
	}
	handleError(w, r, types.RESTError{StatusCode: status, Error: err.Error()})
}
