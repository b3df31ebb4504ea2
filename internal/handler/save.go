package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/osse101/satchel/internal/logger"
	"github.com/osse101/satchel/internal/profile"
	"github.com/osse101/satchel/internal/save"
)

// Save transfer content types
const (
	ContentTypeJSON = "application/json"
	ContentTypeZstd = "application/zstd"
)

// SaveHandler serves save export and import
type SaveHandler struct {
	svc profile.Service
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(svc profile.Service) *SaveHandler {
	return &SaveHandler{svc: svc}
}

// HandleExport returns the profile's save envelope, zstd-compressed on request
// @Summary Export save
// @Tags saves
// @Produce json
// @Produce application/zstd
// @Param id path string true "Profile ID"
// @Param compress query bool false "Return a zstd frame instead of JSON"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/export [get]
func (h *SaveHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	id, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	compress, ok := GetBoolQueryParam(w, r, "compress")
	if !ok {
		return
	}

	data, err := h.svc.ExportSave(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Export save", err, nil)
		return
	}

	contentType, filename := ContentTypeJSON, id+".save.json"
	if compress {
		if data, err = save.Compress(data); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgExportSaveFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgExportSaveFailed)
			return
		}
		contentType, filename = ContentTypeZstd, filename+".zst"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgWriteResponseFailed, "error", err)
	}
}

// HandleImport replaces a profile's save, creating the profile when needed
// @Summary Import save
// @Description Accepts a save envelope, a bare legacy snapshot, or either as a zstd frame.
// @Tags saves
// @Accept json
// @Accept application/zstd
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/import [post]
func (h *SaveHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	id, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgReadSaveFailed)
			return
		}
		respondError(w, http.StatusBadRequest, ErrMsgReadSaveFailed)
		return
	}
	if len(data) == 0 {
		respondError(w, http.StatusBadRequest, ErrMsgEmptySave)
		return
	}

	inv, err := h.svc.ImportSave(r.Context(), id, data)
	if err != nil {
		respondServiceError(w, r, "Import save", err, nil)
		return
	}

	logger.FromContext(r.Context()).Info(MsgSaveImported, "profile_id", id, "bytes", len(data),
		"compressed", save.IsCompressed(data))
	respondJSON(w, http.StatusOK, ProfileResponse{ProfileID: id, Inventory: inv})
}
