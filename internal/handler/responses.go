package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/novatale/armory/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first; headers are already sent so an encode
	// failure can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidRequest     = "Invalid request. Please check your inputs."

	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgPlayerNotFoundError = "Player not found"
	ErrMsgPlayerExistsError   = "Player is already registered"

	ErrMsgNotEquippableError  = "That item cannot be equipped"
	ErrMsgNotInInventoryError = "You don't have that item"
	ErrMsgNotEquippedError    = "That item is not equipped"
	ErrMsgNothingRemovedError = "No matching items to remove"

	ErrMsgNotEnoughGoldError = "Not enough gold"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal detail stays in the logs; the client gets a stable
// status code and an actionable message.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrProfileExists):
		return http.StatusConflict, ErrMsgPlayerExistsError
	case errors.Is(err, domain.ErrNotEquippable):
		return http.StatusBadRequest, ErrMsgNotEquippableError
	case errors.Is(err, domain.ErrNotInInventory):
		return http.StatusBadRequest, ErrMsgNotInInventoryError
	case errors.Is(err, domain.ErrNotEquipped):
		return http.StatusBadRequest, ErrMsgNotEquippedError
	case errors.Is(err, domain.ErrNothingRemoved):
		return http.StatusBadRequest, ErrMsgNothingRemovedError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughGoldError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequest
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps a service error and writes the response
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
