package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	appErr := errors.As(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	// internal details stay in the log
	message := appErr.Message
	if appErr.Status >= 500 {
		message = http.StatusText(appErr.Status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: appErr.Code, Message: message}}); err != nil {
		log.Warn("failed to write error body: %v", err)
	}
}
