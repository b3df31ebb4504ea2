package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/satchel/internal/catalog"
	"github.com/osse101/satchel/internal/database/memory"
	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/inventory"
	"github.com/osse101/satchel/internal/profile"
	"github.com/osse101/satchel/internal/save"
)

// newTestRouter mounts the profile routes over an in-memory store
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	engine := inventory.NewEngine(c)
	svc := profile.NewService(memory.NewProfileRepository(), engine, nil, nil, profile.Config{})

	profiles := NewProfileHandler(svc, c)
	tx := NewTransactionHandler(svc)
	saves := NewSaveHandler(svc)

	r := chi.NewRouter()
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", profiles.HandleListProfiles)
		r.Post("/", profiles.HandleCreateProfile)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", profiles.HandleGetProfile)
			r.Delete("/", profiles.HandleDeleteProfile)
			r.Get("/visible", profiles.HandleGetVisible)
			r.Post("/place", tx.HandlePlace)
			r.Post("/move", tx.HandleMove())
			r.Post("/equip", tx.HandleEquip())
			r.Post("/equip-bag", tx.HandleEquipBag())
			r.Post("/unequip", tx.HandleUnequip())
			r.Post("/delete", tx.HandleDelete())
			r.Post("/consume", tx.HandleConsume())
			r.Post("/seen", tx.HandleMarkSeen())
			r.Get("/export", saves.HandleExport)
			r.Post("/import", saves.HandleImport)
		})
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func createProfile(t *testing.T, h http.Handler, id string) *domain.Snapshot {
	t.Helper()
	w := do(t, h, http.MethodPost, "/profiles", CreateProfileRequest{ProfileID: id})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ProfileResponse](t, w).Inventory
}

func TestHandleCreateProfile(t *testing.T) {
	t.Run("named profile", func(t *testing.T) {
		h := newTestRouter(t)
		inv := createProfile(t, h, "alice")
		require.Len(t, inv.BaseSlots, 7)
		assert.Equal(t, "healing_potion", inv.BaseSlots[1].ItemID)
	})

	t.Run("empty body generates an id", func(t *testing.T) {
		h := newTestRouter(t)
		w := do(t, h, http.MethodPost, "/profiles", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		resp := decode[ProfileResponse](t, w)
		assert.NoError(t, profile.ValidateProfileID(resp.ProfileID))
	})

	t.Run("duplicate", func(t *testing.T) {
		h := newTestRouter(t)
		createProfile(t, h, "alice")
		w := do(t, h, http.MethodPost, "/profiles", CreateProfileRequest{ProfileID: "alice"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, ErrMsgProfileExistsError, decode[ErrorResponse](t, w).Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := newTestRouter(t)
		w := do(t, h, http.MethodPost, "/profiles", `{"profile_id":"no spaces"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ValidationErrorResponse](t, w)
		assert.Equal(t, profile.ErrMsgInvalidProfileID, resp.Fields["profileid"])
	})

	t.Run("unknown field", func(t *testing.T) {
		h := newTestRouter(t)
		w := do(t, h, http.MethodPost, "/profiles", `{"name":"alice"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetProfile(t *testing.T) {
	h := newTestRouter(t)
	created := createProfile(t, h, "alice")

	w := do(t, h, http.MethodGet, "/profiles/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[ProfileResponse](t, w).Inventory)

	w = do(t, h, http.MethodGet, "/profiles/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/profiles/bad.id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/profiles/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"alice"}, decode[ProfileListResponse](t, w).Profiles)
}

func TestHandlePlace(t *testing.T) {
	tests := []struct {
		name          string
		body          any
		wantStatus    int
		wantRemaining int
	}{
		{"fits", PlaceRequest{ItemID: "iron_ore", Amount: 25}, http.StatusOK, 0},
		{"partial", PlaceRequest{ItemID: "gold_coin", Amount: 500}, http.StatusOK, 104},
		{"unknown item", PlaceRequest{ItemID: "dragon_egg", Amount: 1}, http.StatusBadRequest, 0},
		{"zero amount", `{"item_id":"iron_ore","amount":0}`, http.StatusBadRequest, 0},
		{"malformed", `{"item_id":`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t)
			createProfile(t, h, "alice")

			w := do(t, h, http.MethodPost, "/profiles/alice/place", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantRemaining, decode[PlaceResponse](t, w).Remaining)
			}
		})
	}
}

func TestHandleTransaction_RejectionCarriesSnapshot(t *testing.T) {
	h := newTestRouter(t)
	created := createProfile(t, h, "alice")

	w := do(t, h, http.MethodPost, "/profiles/alice/move", `{"from":3,"to":4}`)
	require.Equal(t, http.StatusConflict, w.Code)

	resp := decode[RejectionResponse](t, w)
	assert.Equal(t, domain.ErrMsgSlotEmpty, resp.Error)
	assert.Equal(t, created, resp.Inventory)
}

func TestHandleTransaction_MissingIndex(t *testing.T) {
	h := newTestRouter(t)
	createProfile(t, h, "alice")

	w := do(t, h, http.MethodPost, "/profiles/alice/move", `{"from":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This field is required", decode[ValidationErrorResponse](t, w).Fields["to"])
}

func TestEquipAndVisibleView(t *testing.T) {
	h := newTestRouter(t)
	created := createProfile(t, h, "alice")
	bagID := created.BaseSlots[0].InstanceID

	w := do(t, h, http.MethodPost, "/profiles/alice/equip", `{"index":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/profiles/alice/equip-bag", `{"index":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/profiles/alice/move", `{"from":1,"to":7}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, "/profiles/alice/visible", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[VisibleInventoryResponse](t, w)

	assert.Equal(t, bagID, view.EquippedBagID)
	require.Len(t, view.Slots, 13)
	assert.Equal(t, VisibleSlotView{
		Index:     7,
		Container: bagID,
		Slot:      0,
		ItemID:    "healing_potion",
		Name:      "Healing Potion",
		Count:     3,
	}, view.Slots[7])
	assert.Equal(t, VisibleSlotView{Index: 1, Container: domain.ContainerBase, Slot: 1}, view.Slots[1])
	assert.Equal(t, []EquippedView{{Slot: domain.EquipSlotWeaponMain, ItemID: "short_sword", Name: "Short Sword"}}, view.Equipped)

	w = do(t, h, http.MethodPost, "/profiles/alice/delete",
		fmt.Sprintf(`{"container":%q,"index":0,"amount":1}`, bagID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	inv := decode[ProfileResponse](t, w).Inventory
	assert.Equal(t, 2, inventory.CountItem(inv, "healing_potion"))
}

func TestHandleMarkSeen_Idempotent(t *testing.T) {
	h := newTestRouter(t)
	createProfile(t, h, "alice")

	for i := 0; i < 2; i++ {
		w := do(t, h, http.MethodPost, "/profiles/alice/seen", SeenRequest{ItemIDs: []string{"iron_ore"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"iron_ore"}, decode[ProfileResponse](t, w).Inventory.SeenItemIDs)
	}
}

func TestHandleDeleteProfile(t *testing.T) {
	h := newTestRouter(t)
	createProfile(t, h, "alice")

	w := do(t, h, http.MethodDelete, "/profiles/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MsgProfileDeleted, decode[SuccessResponse](t, w).Message)

	w = do(t, h, http.MethodDelete, "/profiles/alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportImport(t *testing.T) {
	h := newTestRouter(t)
	createProfile(t, h, "alice")
	w := do(t, h, http.MethodPost, "/profiles/alice/place", PlaceRequest{ItemID: "wolf_pelt", Amount: 4})
	require.Equal(t, http.StatusOK, w.Code)
	placed := decode[PlaceResponse](t, w).Inventory

	t.Run("json export", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/profiles/alice/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, ContentTypeJSON, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="alice.save.json"`)

		var env save.Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, domain.SaveVersion, env.Version)
	})

	t.Run("compressed round trip", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/profiles/alice/export?compress=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, ContentTypeZstd, w.Header().Get("Content-Type"))
		require.True(t, save.IsCompressed(w.Body.Bytes()))

		w = do(t, h, http.MethodPost, "/profiles/bob/import", w.Body.Bytes())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, placed, decode[ProfileResponse](t, w).Inventory)
	})

	t.Run("bad compress flag", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/profiles/alice/export?compress=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty import", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/profiles/alice/import", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgEmptySave, decode[ErrorResponse](t, w).Error)
	})

	t.Run("newer version", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/profiles/alice/import", `{"version":9,"data":{}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"not found", fmt.Errorf("load: %w", domain.ErrProfileNotFound), http.StatusNotFound, ErrMsgProfileNotFoundError},
		{"exists", domain.ErrProfileExists, http.StatusConflict, ErrMsgProfileExistsError},
		{"bad input", fmt.Errorf("%w: id", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidRequestError},
		{"invalid slot", fmt.Errorf("move: %w", domain.ErrInvalidSlot), http.StatusBadRequest, domain.ErrMsgInvalidSlot},
		{"unknown equip slot", fmt.Errorf("equip: %w: tail", domain.ErrUnknownEquipSlot), http.StatusBadRequest, domain.ErrMsgUnknownEquipSlot},
		{"self nesting", fmt.Errorf("move: %w", domain.ErrSelfNesting), http.StatusConflict, domain.ErrMsgSelfNesting},
		{"inventory full", domain.ErrInventoryFull, http.StatusConflict, ErrMsgInventoryFullError},
		{"newer save", domain.ErrUnsupportedSaveVersion, http.StatusUnprocessableEntity, ErrMsgUnsupportedSaveError},
		{"shutting down", profile.ErrShuttingDown, http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{"storage failure", assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
