package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	customError "github.com/ujjiboni/dashboard/pkg/errors"
	"github.com/ujjiboni/dashboard/pkg/response"
)

// writeError maps a service error onto an HTTP status. Backend 4xx
// statuses and messages pass through; backend 5xx becomes 502.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *customError.ValidationError
		requestErr    *customError.RequestError
	)

	switch {
	case errors.As(err, &validationErr):
		response.ValidationFailed(w, validationErr)
	case errors.Is(err, customError.ErrSubmissionInFlight):
		response.Conflict(w, "A submission is already in progress")
	case errors.Is(err, customError.ErrMissingLoanID), errors.Is(err, customError.ErrMissingAccountID):
		response.BadRequest(w, err.Error(), nil)
	case errors.As(err, &requestErr):
		status := requestErr.Status
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		message := requestErr.Message
		if message == "" {
			message = http.StatusText(requestErr.Status)
		}
		response.Error(w, status, message, nil)
	case errors.Is(err, customError.ErrUnauthorized):
		response.Unauthorized(w, "Session expired, please log in again")
	case errors.Is(err, customError.ErrBackendUnavailable), errors.Is(err, customError.ErrUnexpectedResponse):
		log.Printf("Backend error: %v", err)
		response.Error(w, http.StatusBadGateway, "Backend request failed", err)
	default:
		log.Printf("Unhandled error: %v", err)
		response.InternalServerError(w, "Something went wrong", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}
	return true
}

// queryInt reads an integer query parameter; missing or malformed values are 0.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}
