package domain

// Container identifiers used when addressing a slot array directly
const (
	ContainerBase = "base"
)

// EquipSlotBag is the pseudo equipment slot backed by Snapshot.EquippedBagID
const EquipSlotBag = "bag"

// Equipment slot ids
const (
	EquipSlotHead      = "head"
	EquipSlotNeck      = "neck"
	EquipSlotShoulders = "shoulders"
	EquipSlotChest     = "chest"
	EquipSlotBack      = "back"
	EquipSlotWrists    = "wrists"
	EquipSlotHands     = "hands"
	EquipSlotWaist     = "waist"
	EquipSlotLegs      = "legs"
	EquipSlotFeet      = "feet"

	EquipSlotRingLeft     = "ringLeft"
	EquipSlotRingRight    = "ringRight"
	EquipSlotEarringLeft  = "earringLeft"
	EquipSlotEarringRight = "earringRight"

	EquipSlotWeaponMain   = "weaponMain"
	EquipSlotWeaponOff    = "weaponOff"
	EquipSlotWeaponOuter1 = "weaponOuter1"
	EquipSlotWeaponOuter2 = "weaponOuter2"
)

// DefaultEquipSlots is the character slot taxonomy used when a catalog does not declare one
var DefaultEquipSlots = []string{
	EquipSlotHead,
	EquipSlotNeck,
	EquipSlotShoulders,
	EquipSlotChest,
	EquipSlotBack,
	EquipSlotWrists,
	EquipSlotHands,
	EquipSlotWaist,
	EquipSlotLegs,
	EquipSlotFeet,
	EquipSlotRingLeft,
	EquipSlotRingRight,
	EquipSlotEarringLeft,
	EquipSlotEarringRight,
	EquipSlotWeaponMain,
	EquipSlotWeaponOff,
	EquipSlotWeaponOuter1,
	EquipSlotWeaponOuter2,
}

// DualSlotPairs maps the primary slot of each left/right family to its partner
var DualSlotPairs = map[string]string{
	EquipSlotRingLeft:     EquipSlotRingRight,
	EquipSlotEarringLeft:  EquipSlotEarringRight,
	EquipSlotWeaponOuter1: EquipSlotWeaponOuter2,
}

// PartnerSlot returns the other half of a dual slot family, in either direction
func PartnerSlot(slotID string) (string, bool) {
	if partner, ok := DualSlotPairs[slotID]; ok {
		return partner, true
	}
	for primary, partner := range DualSlotPairs {
		if partner == slotID {
			return primary, true
		}
	}
	return "", false
}

// Save envelope
const (
	SaveVersion = 1
)
