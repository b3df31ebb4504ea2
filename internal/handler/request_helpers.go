package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/satchel/internal/logger"
	"github.com/osse101/satchel/internal/profile"
)

// URL parameter names shared with the router
const (
	ParamProfileID = "id"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If this function returns an error, the HTTP response has already been
// written and the handler should return.
//
// Example usage:
//
//	var req PlaceRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Place"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf(LogMsgDecodeFailedFormat, actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf(LogMsgDecodedFormat, actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(LogMsgInvalidRequest, "action", actionName, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// profileIDParam reads and checks the profile id path parameter.
// If ok is false, the response has already been written.
func profileIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, ParamProfileID)
	if id == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingProfileID)
		return "", false
	}
	if err := profile.ValidateProfileID(id); err != nil {
		respondError(w, http.StatusBadRequest, profile.ErrMsgInvalidProfileID)
		return "", false
	}
	return id, true
}

// GetBoolQueryParam parses an optional boolean query parameter.
// If ok is false, the response has already been written.
func GetBoolQueryParam(w http.ResponseWriter, r *http.Request, paramName string) (value bool, ok bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return false, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName))
		return false, false
	}
	return value, true
}
