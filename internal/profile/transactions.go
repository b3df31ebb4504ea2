package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/event"
	"github.com/osse101/satchel/internal/inventory"
	"github.com/osse101/satchel/internal/logger"
	"github.com/osse101/satchel/internal/metrics"
	"github.com/osse101/satchel/internal/save"
)

// txFunc applies one engine transaction to the loaded snapshot
type txFunc func(inv *domain.Snapshot) inventory.Result

// mutate runs lock, load, apply, persist, cache, publish for one transaction.
// A rejection returns the unchanged snapshot with the reason wrapped.
func (s *service) mutate(ctx context.Context, profileID, op string, tx txFunc) (*domain.Snapshot, error) {
	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if err := ValidateProfileID(profileID); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With("profile_id", profileID, "op", op)

	unlock := s.locks.Lock(profileID)
	defer unlock()

	env, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	res := tx(env.Data.Inventory)
	if !res.OK {
		metrics.RecordTransaction(op, metrics.ResultRejected)
		log.Debug(LogMsgTransactionRejected, "reason", res.Reason)
		return env.Data.Inventory, fmt.Errorf("%s: %w", op, res.Reason)
	}

	next := *env
	next.Data.Inventory = res.Next
	data, err := save.Encode(&next)
	if err != nil {
		metrics.RecordTransaction(op, metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSave, err)
	}
	if err := s.repo.UpdateSave(ctx, profileID, data); err != nil {
		metrics.RecordTransaction(op, metrics.ResultError)
		s.cache.Invalidate(profileID)
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPersist, err)
	}

	s.cache.Set(profileID, &next)
	metrics.RecordTransaction(op, metrics.ResultAccepted)
	s.publish(ctx, event.NewInventoryChangedEvent(profileID, op, res.Next))

	log.Debug(LogMsgTransactionApplied)
	return res.Next, nil
}

// Place adds amount units of itemID and returns how many did not fit.
// A partial placement is persisted and is not an error.
func (s *service) Place(ctx context.Context, profileID, itemID string, amount int) (*domain.Snapshot, int, error) {
	remaining := amount
	next, err := s.mutate(ctx, profileID, OpPlace, func(inv *domain.Snapshot) inventory.Result {
		pr := s.engine.Place(inv, itemID, amount, inventory.PlaceOptions{})
		remaining = pr.Remaining
		if pr.Next == inv {
			return inventory.Result{Next: inv, Reason: pr.Reason}
		}
		return inventory.Result{Next: pr.Next, OK: true}
	})
	if err != nil {
		return next, remaining, err
	}

	if placed := amount - remaining; placed > 0 {
		metrics.ItemsPlaced.WithLabelValues(itemID).Add(float64(placed))
	}
	if remaining > 0 {
		logger.FromContext(ctx).Info(LogMsgPartialPlacement,
			"profile_id", profileID, "item", itemID, "remaining", remaining)
	}
	return next, remaining, nil
}

// MoveSlot drops the stack at one visible index onto another
func (s *service) MoveSlot(ctx context.Context, profileID string, from, to int) (*domain.Snapshot, error) {
	return s.mutate(ctx, profileID, OpMove, func(inv *domain.Snapshot) inventory.Result {
		return s.engine.DropOnVisibleSlot(inv, from, to)
	})
}

// Equip equips the item at a visible index, into slotID when given
func (s *service) Equip(ctx context.Context, profileID string, index int, slotID string) (*domain.Snapshot, error) {
	return s.mutate(ctx, profileID, OpEquip, func(inv *domain.Snapshot) inventory.Result {
		return s.engine.EquipFromVisibleIndex(inv, index, slotID)
	})
}

// EquipBag opens the bag at a visible index
func (s *service) EquipBag(ctx context.Context, profileID string, index int) (*domain.Snapshot, error) {
	return s.mutate(ctx, profileID, OpEquipBag, func(inv *domain.Snapshot) inventory.Result {
		return s.engine.PerformBagEquipSwap(inv, index)
	})
}

// DropEquipped moves an equipped item or the open bag onto a visible slot
func (s *service) DropEquipped(ctx context.Context, profileID, equipSlot string, index int) (*domain.Snapshot, error) {
	return s.mutate(ctx, profileID, OpDropEquipped, func(inv *domain.Snapshot) inventory.Result {
		return s.engine.DropEquippedOnVisibleSlot(inv, equipSlot, index)
	})
}

// Unequip returns an equipped item or the open bag to the inventory
func (s *service) Unequip(ctx context.Context, profileID, equipSlot string) (*domain.Snapshot, error) {
	return s.mutate(ctx, profileID, OpUnequip, func(inv *domain.Snapshot) inventory.Result {
		return s.engine.UnequipToInventory(inv, equipSlot)
	})
}

// DeleteFromSlot destroys up to amount units from one container slot
func (s *service) DeleteFromSlot(ctx context.Context, profileID, container string, index, amount int) (*domain.Snapshot, error) {
	var itemID string
	var deleted int
	next, err := s.mutate(ctx, profileID, OpDeleteFromSlot, func(inv *domain.Snapshot) inventory.Result {
		if slot := containerSlot(inv, container, index); slot != nil {
			itemID = slot.ItemID
		}
		res := s.engine.DeleteFromInventory(inv, container, index, amount)
		if res.OK && itemID != "" {
			deleted = inventory.CountItem(inv, itemID) - inventory.CountItem(res.Next, itemID)
		}
		return res
	})
	if err == nil && deleted > 0 {
		metrics.ItemsDeleted.WithLabelValues(itemID).Add(float64(deleted))
	}
	return next, err
}

// DeleteEquipped destroys the item in an equipment slot or the open bag
func (s *service) DeleteEquipped(ctx context.Context, profileID, equipSlot string) (*domain.Snapshot, error) {
	var itemID string
	next, err := s.mutate(ctx, profileID, OpDeleteEquipped, func(inv *domain.Snapshot) inventory.Result {
		if equipSlot == domain.EquipSlotBag {
			itemID = inventory.BagTypeForInstance(inv.EquippedBagID)
		} else if item := inv.EquippedItems[equipSlot]; item != nil {
			itemID = item.ItemID
		}
		return s.engine.DeleteEquipped(inv, equipSlot)
	})
	if err == nil && itemID != "" {
		metrics.ItemsDeleted.WithLabelValues(itemID).Inc()
	}
	return next, err
}

// Consume removes amount units of itemID, open bag first
func (s *service) Consume(ctx context.Context, profileID, itemID string, amount int) (*domain.Snapshot, error) {
	next, err := s.mutate(ctx, profileID, OpConsume, func(inv *domain.Snapshot) inventory.Result {
		return s.engine.ConsumeItem(inv, itemID, amount)
	})
	if err == nil {
		metrics.ItemsConsumed.WithLabelValues(itemID).Add(float64(amount))
	}
	return next, err
}

// MarkSeen records item ids as seen. Marking only known ids is not an error.
func (s *service) MarkSeen(ctx context.Context, profileID string, itemIDs []string) (*domain.Snapshot, error) {
	next, err := s.mutate(ctx, profileID, OpMarkSeen, func(inv *domain.Snapshot) inventory.Result {
		return s.engine.MarkSeen(inv, itemIDs...)
	})
	if errors.Is(err, domain.ErrNoChange) {
		return next, nil
	}
	return next, err
}

func containerSlot(inv *domain.Snapshot, container string, index int) *domain.Slot {
	slots := inv.BaseSlots
	if container != domain.ContainerBase {
		slots = inv.BagSlotsByID[container]
	}
	if index < 0 || index >= len(slots) {
		return nil
	}
	return slots[index]
}
