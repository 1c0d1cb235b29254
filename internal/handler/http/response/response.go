package response

import (
	"encoding/json"
	"net/http"

	"github.com/arusdata/hrm-backend-go/internal/pkg/validator"
)

// Body is the response envelope shared by every endpoint. Success responses
// carry data; failures carry an errors array, with one entry per problem.
type Body struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Errors     []ErrorItem `json:"errors,omitempty"`
}

type ErrorItem struct {
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path,omitempty"`
	Location string `json:"location,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload Body) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Body{
			Success:    false,
			StatusCode: http.StatusInternalServerError,
			Errors:     []ErrorItem{{Type: "error", Msg: "Failed to encode response"}},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func OK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Body{
		Success:    true,
		StatusCode: http.StatusOK,
		Data:       data,
	})
}

func Created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, Body{
		Success:    true,
		StatusCode: http.StatusCreated,
		Data:       data,
	})
}

// Error responses
func Fail(w http.ResponseWriter, statusCode int, items ...ErrorItem) {
	writeJSON(w, statusCode, Body{
		Success:    false,
		StatusCode: statusCode,
		Errors:     items,
	})
}

func failWithMessage(w http.ResponseWriter, statusCode int, message string) {
	Fail(w, statusCode, ErrorItem{Type: "error", Msg: message})
}

// ValidationFailed renders field errors the way the API has always reported
// them: one entry per field, location naming the request part at fault.
func ValidationFailed(w http.ResponseWriter, errs validator.ValidationErrors, location string) {
	items := make([]ErrorItem, 0, len(errs))
	for _, fieldErr := range errs.Dedupe() {
		items = append(items, ErrorItem{
			Type:     "field",
			Msg:      fieldErr.Message,
			Path:     fieldErr.Field,
			Location: location,
		})
	}
	Fail(w, http.StatusBadRequest, items...)
}

func BadRequest(w http.ResponseWriter, message string) {
	failWithMessage(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	failWithMessage(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	failWithMessage(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	failWithMessage(w, http.StatusNotFound, message)
}

func Conflict(w http.ResponseWriter, message string) {
	failWithMessage(w, http.StatusConflict, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	failWithMessage(w, http.StatusInternalServerError, message)
}
