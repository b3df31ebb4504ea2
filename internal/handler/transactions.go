package handler

import (
	"context"
	"net/http"

	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/profile"
)

// Request bodies. Indices are pointers so a missing index is told apart from index 0.

type PlaceRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	Amount int    `json:"amount" validate:"min=1,max=10000"`
}

type MoveRequest struct {
	From *int `json:"from" validate:"required,gte=0"`
	To   *int `json:"to" validate:"required,gte=0"`
}

type EquipRequest struct {
	Index *int   `json:"index" validate:"required,gte=0"`
	Slot  string `json:"slot,omitempty" validate:"omitempty,max=32,alphanum"`
}

type EquipBagRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

type DropEquippedRequest struct {
	Slot  string `json:"slot" validate:"required,max=32,alphanum"`
	Index *int   `json:"index" validate:"required,gte=0"`
}

type EquipSlotRequest struct {
	Slot string `json:"slot" validate:"required,max=32,alphanum"`
}

type DeleteRequest struct {
	Container string `json:"container" validate:"required,max=128,container"`
	Index     *int   `json:"index" validate:"required,gte=0"`
	Amount    int    `json:"amount" validate:"min=1,max=10000"`
}

type ConsumeRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	Amount int    `json:"amount" validate:"min=1,max=10000"`
}

type SeenRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,max=100,dive,required,max=100"`
}

// PlaceResponse reports the new snapshot and how many units did not fit
type PlaceResponse struct {
	ProfileID string           `json:"profile_id"`
	Remaining int              `json:"remaining"`
	Inventory *domain.Snapshot `json:"inventory"`
}

// TransactionHandler serves the inventory mutation endpoints
type TransactionHandler struct {
	svc profile.Service
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(svc profile.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// handleTransaction decodes REQ, runs apply against the path's profile and
// answers with the resulting snapshot. Rejections answer 409 with the
// unchanged snapshot.
func handleTransaction[REQ any](
	opName string,
	apply func(ctx context.Context, profileID string, req *REQ) (*domain.Snapshot, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := profileIDParam(w, r)
		if !ok {
			return
		}

		var req REQ
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}

		inv, err := apply(r.Context(), id, &req)
		if err != nil {
			respondServiceError(w, r, opName, err, inv)
			return
		}
		respondJSON(w, http.StatusOK, ProfileResponse{ProfileID: id, Inventory: inv})
	}
}

// HandlePlace adds items to the inventory
// @Summary Place items
// @Description Stacks onto existing slots first, then fills empty slots, open bag first.
// @Description Units that do not fit are reported in remaining.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body PlaceRequest true "Item and amount"
// @Success 200 {object} PlaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/place [post]
func (h *TransactionHandler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	var req PlaceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place"); err != nil {
		return
	}

	inv, remaining, err := h.svc.Place(r.Context(), id, req.ItemID, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Place", err, inv)
		return
	}
	respondJSON(w, http.StatusOK, PlaceResponse{ProfileID: id, Remaining: remaining, Inventory: inv})
}

// HandleMove drops one visible slot onto another: merge, top up or swap
// @Summary Move or swap a stack
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body MoveRequest true "Visible indices"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/move [post]
func (h *TransactionHandler) HandleMove() http.HandlerFunc {
	return handleTransaction("Move", func(ctx context.Context, id string, req *MoveRequest) (*domain.Snapshot, error) {
		return h.svc.MoveSlot(ctx, id, *req.From, *req.To)
	})
}

// HandleEquip equips the item at a visible index
// @Summary Equip item
// @Description Equips one unit. slot is optional; bags are opened instead.
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body EquipRequest true "Visible index and optional slot"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/equip [post]
func (h *TransactionHandler) HandleEquip() http.HandlerFunc {
	return handleTransaction("Equip", func(ctx context.Context, id string, req *EquipRequest) (*domain.Snapshot, error) {
		return h.svc.Equip(ctx, id, *req.Index, req.Slot)
	})
}

// HandleEquipBag opens the bag at a visible index
// @Summary Equip bag
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body EquipBagRequest true "Visible index"
// @Success 200 {object} ProfileResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/equip-bag [post]
func (h *TransactionHandler) HandleEquipBag() http.HandlerFunc {
	return handleTransaction("Equip bag", func(ctx context.Context, id string, req *EquipBagRequest) (*domain.Snapshot, error) {
		return h.svc.EquipBag(ctx, id, *req.Index)
	})
}

// HandleDropEquipped moves an equipped item or the open bag onto a visible slot
// @Summary Drop equipped item on a slot
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body DropEquippedRequest true "Equipment slot and visible index"
// @Success 200 {object} ProfileResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/drop-equipped [post]
func (h *TransactionHandler) HandleDropEquipped() http.HandlerFunc {
	return handleTransaction("Drop equipped", func(ctx context.Context, id string, req *DropEquippedRequest) (*domain.Snapshot, error) {
		return h.svc.DropEquipped(ctx, id, req.Slot, *req.Index)
	})
}

// HandleUnequip returns an equipped item or the open bag to the inventory
// @Summary Unequip
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body EquipSlotRequest true "Equipment slot, or bag"
// @Success 200 {object} ProfileResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/unequip [post]
func (h *TransactionHandler) HandleUnequip() http.HandlerFunc {
	return handleTransaction("Unequip", func(ctx context.Context, id string, req *EquipSlotRequest) (*domain.Snapshot, error) {
		return h.svc.Unequip(ctx, id, req.Slot)
	})
}

// HandleDelete destroys units from one container slot
// @Summary Delete from slot
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body DeleteRequest true "Container, slot index and amount"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/delete [post]
func (h *TransactionHandler) HandleDelete() http.HandlerFunc {
	return handleTransaction("Delete", func(ctx context.Context, id string, req *DeleteRequest) (*domain.Snapshot, error) {
		return h.svc.DeleteFromSlot(ctx, id, req.Container, *req.Index, req.Amount)
	})
}

// HandleDeleteEquipped destroys an equipped item or the open bag
// @Summary Delete equipped
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body EquipSlotRequest true "Equipment slot, or bag"
// @Success 200 {object} ProfileResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/delete-equipped [post]
func (h *TransactionHandler) HandleDeleteEquipped() http.HandlerFunc {
	return handleTransaction("Delete equipped", func(ctx context.Context, id string, req *EquipSlotRequest) (*domain.Snapshot, error) {
		return h.svc.DeleteEquipped(ctx, id, req.Slot)
	})
}

// HandleConsume removes exactly amount units of an item
// @Summary Consume item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body ConsumeRequest true "Item and amount"
// @Success 200 {object} ProfileResponse
// @Failure 409 {object} RejectionResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/consume [post]
func (h *TransactionHandler) HandleConsume() http.HandlerFunc {
	return handleTransaction("Consume", func(ctx context.Context, id string, req *ConsumeRequest) (*domain.Snapshot, error) {
		return h.svc.Consume(ctx, id, req.ItemID, req.Amount)
	})
}

// HandleMarkSeen records item ids the player has been shown
// @Summary Mark items seen
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body SeenRequest true "Item ids"
// @Success 200 {object} ProfileResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/seen [post]
func (h *TransactionHandler) HandleMarkSeen() http.HandlerFunc {
	return handleTransaction("Mark seen", func(ctx context.Context, id string, req *SeenRequest) (*domain.Snapshot, error) {
		return h.svc.MarkSeen(ctx, id, req.ItemIDs)
	})
}
