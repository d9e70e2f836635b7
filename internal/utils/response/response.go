package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/go-playground/validator/v10"
)

// APIResponse is the envelope used by the account, order and admin routes.
// Cart and payment routes answer with their bare payload instead.
type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response body", slog.Int("status", statusCode), slog.String("error", err.Error()))
		return err
	}

	return nil
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	WriteJson(w, statusCode, APIResponse{Success: true, Data: data})
}

// Error writes err as an envelope. Anything that is not an AppError is
// reported as a generic 500 so internals never reach the client.
func Error(w http.ResponseWriter, err error) {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.InternalError("An unexpected error occurred")
	}

	body := &ErrorResponse{Code: appErr.Code, Message: appErr.Message}
	if appErr.Detail != "" {
		body.Details = []string{appErr.Detail}
	}

	WriteJson(w, appErr.StatusCode, APIResponse{Error: body})
}

// Text writes a plain body for machine callers that expect a literal
// acknowledgement, such as the payment gateway.
func Text(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

var tagMessages = map[string]string{
	"required": "Field %s is required",
	"email":    "Field %s must be a valid email address",
	"min":      "Field %s must be at least %s",
	"max":      "Field %s must be at most %s",
	"gte":      "Field %s must be greater than or equal to %s",
	"gt":       "Field %s must be greater than %s",
	"lt":       "Field %s must be less than %s",
	"oneof":    "Field %s must be one of [%s]",
}

// ValidationError reports every failed field in one 400 response.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	details := make([]string, 0, len(errs))

	for _, fe := range errs {
		format, ok := tagMessages[fe.Tag()]
		if !ok {
			details = append(details, fmt.Sprintf("Field %s is invalid: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}

		if fe.Param() == "" {
			details = append(details, fmt.Sprintf(format, fe.Field()))
		} else {
			details = append(details, fmt.Sprintf(format, fe.Field(), fe.Param()))
		}
	}

	WriteJson(w, http.StatusBadRequest, APIResponse{
		Error: &ErrorResponse{
			Code:    errors.ErrCodeValidation,
			Message: "Validation failed",
			Details: details,
		},
	})
}
