package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/logger"
	"github.com/osse101/satchel/internal/profile"
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

// RejectionResponse is returned when the engine refuses a transaction.
// Inventory is the unchanged snapshot so a client can resync.
type RejectionResponse struct {
	Error     string           `json:"error"`
	Inventory *domain.Snapshot `json:"inventory,omitempty"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeResponseFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteResponseFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	ErrMsgProfileNotFoundError   = "Profile not found"
	ErrMsgProfileExistsError     = "Profile already exists"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgUnsupportedSaveError   = "Save was written by a newer version"
	ErrMsgInventoryFullError     = "Inventory is full"
	ErrMsgInsufficientItemsError = "Not enough items"
)

// rejectionReasons are engine refusals. They map to 409 with the domain message.
var rejectionReasons = []error{
	domain.ErrSlotEmpty,
	domain.ErrSlotOccupied,
	domain.ErrNoChange,
	domain.ErrNotABag,
	domain.ErrSelfNesting,
	domain.ErrNestedBagNotEmpty,
	domain.ErrAlreadyEquipped,
	domain.ErrNotEquippable,
	domain.ErrIncompatibleSlot,
}

// badInputReasons are request errors that mention what was wrong
var badInputReasons = []error{
	domain.ErrInvalidSlot,
	domain.ErrInvalidAmount,
	domain.ErrUnknownEquipSlot,
	domain.ErrUnknownContainer,
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFoundError
	case errors.Is(err, domain.ErrProfileExists):
		return http.StatusConflict, ErrMsgProfileExistsError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrUnsupportedSaveVersion):
		return http.StatusUnprocessableEntity, ErrMsgUnsupportedSaveError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusConflict, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusConflict, ErrMsgInsufficientItemsError
	case errors.Is(err, profile.ErrShuttingDown):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	for _, reason := range badInputReasons {
		if errors.Is(err, reason) {
			return http.StatusBadRequest, reason.Error()
		}
	}
	for _, reason := range rejectionReasons {
		if errors.Is(err, reason) {
			return http.StatusConflict, reason.Error()
		}
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the mapped status. A rejected
// transaction also carries the unchanged inventory.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error, inv *domain.Snapshot) {
	status, msg := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf(LogMsgServiceErrorFormat, opName), "error", err)
	} else {
		log.Debug(fmt.Sprintf(LogMsgServiceErrorFormat, opName), "error", err, "status", status)
	}

	if status == http.StatusConflict && inv != nil {
		respondJSON(w, status, RejectionResponse{Error: msg, Inventory: inv})
		return
	}
	respondError(w, status, msg)
}
