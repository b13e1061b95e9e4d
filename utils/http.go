package utils

import (
	"encoding/json"
	"net/http"
)

// Error messages shared by every endpoint. Clients only ever see these.
const (
	MessageBadRequest          = "bad request"
	MessageAuthorization       = "authorization error"
	MessageNotFound            = "resource not found"
	MessageMethodNotAllowed    = "method not allowed"
	MessageUnprocessable       = "unprocessable entity"
	MessageTooManyRequests     = "too many requests"
	MessageInternalServerError = "internal server error"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteError writes the error envelope for status
func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter) error {
	return WriteError(w, http.StatusBadRequest, MessageBadRequest)
}

// WriteAuthError writes an authorization failure. status is 400, 401 or 403
// depending on which guard stage rejected the request.
func WriteAuthError(w http.ResponseWriter, status int) error {
	return WriteError(w, status, MessageAuthorization)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter) error {
	return WriteError(w, http.StatusNotFound, MessageNotFound)
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed response
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteError(w, http.StatusMethodNotAllowed, MessageMethodNotAllowed)
}

// WriteUnprocessable writes a 422 Unprocessable Entity response
func WriteUnprocessable(w http.ResponseWriter) error {
	return WriteError(w, http.StatusUnprocessableEntity, MessageUnprocessable)
}

// WriteTooManyRequests writes a 429 Too Many Requests response
func WriteTooManyRequests(w http.ResponseWriter) error {
	return WriteError(w, http.StatusTooManyRequests, MessageTooManyRequests)
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter) error {
	return WriteError(w, http.StatusInternalServerError, MessageInternalServerError)
}
