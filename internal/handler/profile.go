package handler

import (
	"net/http"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/inventory"
	"github.com/osse101/satchel/internal/logger"
	"github.com/osse101/satchel/internal/profile"
)

// ProfileHandler serves profile lifecycle and inventory reads
type ProfileHandler struct {
	svc     profile.Service
	catalog inventory.Catalog
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(svc profile.Service, catalog inventory.Catalog) *ProfileHandler {
	return &ProfileHandler{svc: svc, catalog: catalog}
}

// CreateProfileRequest optionally names the new profile
type CreateProfileRequest struct {
	ProfileID string `json:"profile_id,omitempty" validate:"omitempty,profileid"`
}

// ProfileResponse carries a profile's full inventory snapshot
type ProfileResponse struct {
	ProfileID string           `json:"profile_id"`
	Inventory *domain.Snapshot `json:"inventory"`
}

// ProfileListResponse lists stored profiles, most recently updated first
type ProfileListResponse struct {
	Profiles []string `json:"profiles"`
}

// VisibleSlotView is one cell of the flattened grid a client draws
type VisibleSlotView struct {
	Index      int    `json:"index"`
	Container  string `json:"container"`
	Slot       int    `json:"slot"`
	ItemID     string `json:"item_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Count      int    `json:"count,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
}

// EquippedView is one occupied equipment slot
type EquippedView struct {
	Slot       string `json:"slot"`
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	InstanceID string `json:"instance_id,omitempty"`
}

// VisibleInventoryResponse is the base slots followed by the open bag's slots
type VisibleInventoryResponse struct {
	ProfileID     string            `json:"profile_id"`
	EquippedBagID string            `json:"equipped_bag_id,omitempty"`
	Slots         []VisibleSlotView `json:"slots"`
	Equipped      []EquippedView    `json:"equipped"`
}

// HandleCreateProfile creates a profile holding the starter kit
// @Summary Create profile
// @Description Creates a profile with the starter kit. An omitted profile_id is generated.
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body CreateProfileRequest false "Optional profile id"
// @Success 201 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles [post]
func (h *ProfileHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if r.ContentLength != 0 {
		if err := DecodeAndValidateRequest(r, w, &req, "Create profile"); err != nil {
			return
		}
	}

	id, inv, err := h.svc.CreateProfile(r.Context(), req.ProfileID)
	if err != nil {
		respondServiceError(w, r, "Create profile", err, nil)
		return
	}

	logger.FromContext(r.Context()).Info("Profile created via API", "profile_id", id)
	respondJSON(w, http.StatusCreated, ProfileResponse{ProfileID: id, Inventory: inv})
}

// HandleListProfiles lists stored profile ids
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Success 200 {object} ProfileListResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles [get]
func (h *ProfileHandler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ListProfiles(r.Context())
	if err != nil {
		respondServiceError(w, r, "List profiles", err, nil)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, ProfileListResponse{Profiles: ids})
}

// HandleGetProfile returns the normalized inventory snapshot
// @Summary Get inventory snapshot
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id} [get]
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.GetSnapshot(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get profile", err, nil)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{ProfileID: id, Inventory: inv})
}

// HandleGetVisible returns the flattened visible grid with display names
// @Summary Get visible inventory
// @Description Base slots followed by the open bag's slots, plus equipped items
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} VisibleInventoryResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id}/visible [get]
func (h *ProfileHandler) HandleGetVisible(w http.ResponseWriter, r *http.Request) {
	id, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.GetSnapshot(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get visible inventory", err, nil)
		return
	}
	respondJSON(w, http.StatusOK, h.visibleView(id, inv))
}

// HandleDeleteProfile removes a profile and its save
// @Summary Delete profile
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/profiles/{id} [delete]
func (h *ProfileHandler) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteProfile(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete profile", err, nil)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProfileDeleted})
}

// HandleGetCacheStats returns snapshot cache statistics
// @Summary Get snapshot cache stats
// @Tags admin
// @Produce json
// @Success 200 {object} profile.CacheStats
// @Security ApiKeyAuth
// @Router /api/v1/admin/cache/stats [get]
func (h *ProfileHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.GetCacheStats())
}

func (h *ProfileHandler) visibleView(profileID string, inv *domain.Snapshot) VisibleInventoryResponse {
	resp := VisibleInventoryResponse{
		ProfileID:     profileID,
		EquippedBagID: inv.EquippedBagID,
		Slots:         make([]VisibleSlotView, 0, len(inv.BaseSlots)),
		Equipped:      make([]EquippedView, 0, len(inv.EquippedItems)),
	}

	add := func(container string, slots []*domain.Slot) {
		for i, slot := range slots {
			view := VisibleSlotView{Index: len(resp.Slots), Container: container, Slot: i}
			if slot != nil {
				view.ItemID = slot.ItemID
				view.Name = h.displayName(slot.ItemID)
				view.Count = slot.Count
				view.InstanceID = slot.InstanceID
			}
			resp.Slots = append(resp.Slots, view)
		}
	}
	add(domain.ContainerBase, inv.BaseSlots)
	if inv.EquippedBagID != "" {
		add(inv.EquippedBagID, inv.OpenBagSlots())
	}

	for _, slotID := range sortedEquipSlots(inv.EquippedItems) {
		item := inv.EquippedItems[slotID]
		resp.Equipped = append(resp.Equipped, EquippedView{
			Slot:       slotID,
			ItemID:     item.ItemID,
			Name:       h.displayName(item.ItemID),
			InstanceID: item.InstanceID,
		})
	}
	return resp
}

// displayName prefers the catalog name, else title-cases the id
func (h *ProfileHandler) displayName(itemID string) string {
	if def, ok := h.catalog.Item(itemID); ok && def.Name != "" {
		return def.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(itemID, "_", " "))
}

// sortedEquipSlots orders occupied slots by the default taxonomy, unknown ids last
func sortedEquipSlots(equipped map[string]*domain.EquippedItem) []string {
	out := make([]string, 0, len(equipped))
	seen := make(map[string]bool, len(equipped))
	for _, slotID := range domain.DefaultEquipSlots {
		if equipped[slotID] != nil {
			out = append(out, slotID)
			seen[slotID] = true
		}
	}
	var rest []string
	for slotID, item := range equipped {
		if item != nil && !seen[slotID] {
			rest = append(rest, slotID)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}
