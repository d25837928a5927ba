package inventory

import "heroacademy/pkg/hero"

// Item is a cosmetic sold in the shop.
type Item struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Slot  hero.Slot `json:"type"`
	Price int       `json:"price"`
	Image string    `json:"image"`
}

const (
	NeonCapeID     = 1
	GlobalShieldID = 2
	TurboBootsID   = 3
	EliteHelmetID  = 4
	DragonPetID    = 5
)

// CapeXPBonus is applied to mission experience while the neon cape is equipped.
const CapeXPBonus = 1.10

var catalog = []Item{
	{ID: NeonCapeID, Name: "Capa de Neón", Slot: hero.SlotCape, Price: 500, Image: "/imagenes/capa de neón.webp"},
	{ID: GlobalShieldID, Name: "Escudo Global", Slot: hero.SlotAura, Price: 1200, Image: "/imagenes/escudo global.webp"},
	{ID: TurboBootsID, Name: "Botas Turbo", Slot: hero.SlotSuit, Price: 850, Image: "/imagenes/Botas turbo.webp"},
	{ID: EliteHelmetID, Name: "Casco Elite", Slot: hero.SlotSuit, Price: 2000, Image: "/imagenes/Casco elite.webp"},
	{ID: DragonPetID, Name: "Dragón Mascota", Slot: hero.SlotPet, Price: 1500, Image: "/imagenes/dragon mascota.webp"},
}

// Catalog returns a copy of every item for sale.
func Catalog() []Item {
	return append([]Item(nil), catalog...)
}

// Lookup returns the catalog item with id.
func Lookup(id int) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
