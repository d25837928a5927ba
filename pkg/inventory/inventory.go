package inventory

import (
	"errors"

	"heroacademy/pkg/hero"
)

var (
	ErrUnknownItem       = errors.New("unknown item")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrNotOwned          = errors.New("item not owned")
	ErrSlotMismatch      = errors.New("item does not fit slot")
)

// Purchase debits the item price and adds it to the owned set. The profile is
// left untouched when the purchase is rejected.
func Purchase(item Item, p *hero.Profile) error {
	p.EnsureMaps()
	if p.Owns(item.ID) {
		return ErrAlreadyOwned
	}
	if p.Coins < item.Price {
		return ErrInsufficientFunds
	}
	p.Coins -= item.Price
	p.Inventory.Items = append(p.Inventory.Items, item.ID)
	return nil
}

// Equip toggles itemID in slot. Equipping the item already in the slot empties
// it. The returned flag reports whether the item is equipped afterwards.
func Equip(itemID int, slot hero.Slot, p *hero.Profile) (bool, error) {
	item, ok := Lookup(itemID)
	if !ok {
		return false, ErrUnknownItem
	}
	if item.Slot != slot {
		return false, ErrSlotMismatch
	}
	if !p.Owns(itemID) {
		return false, ErrNotOwned
	}
	p.EnsureMaps()

	if current, ok := p.EquippedIn(slot); ok && current == itemID {
		p.EquippedItems[slot] = nil
		return false, nil
	}
	id := itemID
	p.EquippedItems[slot] = &id
	return true, nil
}

// XPMultiplier returns the experience multiplier granted by equipped items.
func XPMultiplier(p *hero.Profile) float64 {
	if p == nil {
		return 1
	}
	if id, ok := p.EquippedIn(hero.SlotCape); ok && id == NeonCapeID && p.Owns(NeonCapeID) {
		return CapeXPBonus
	}
	return 1
}
