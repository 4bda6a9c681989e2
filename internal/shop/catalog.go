package shop

// catalog is the canonical item list. Keep IDs stable because profiles store
// unlocked aura ids and avatar seed values.
var catalog = []Item{
	{
		ID:          "aura_gold",
		Name:        "Golden Aura",
		Description: "Wrap your avatar in a radiant golden glow.",
		Cost:        150,
		Type:        ItemTypeAura,
		Value:       "gold",
	},
	{
		ID:          "aura_neon",
		Name:        "Neon Pulse",
		Description: "A flickering neon outline for night-shift heroes.",
		Cost:        250,
		Type:        ItemTypeAura,
		Value:       "neon",
	},
	{
		ID:          "aura_void",
		Name:        "Void Shroud",
		Description: "Absorbs all light. Extremely dramatic.",
		Cost:        400,
		Type:        ItemTypeAura,
		Value:       "void",
	},
	{
		ID:          "skin_cyberpunk",
		Name:        "Cyberpunk Outfit",
		Description: "Chrome, wires and attitude.",
		Cost:        300,
		Type:        ItemTypeSkin,
		Value:       "cyberpunk",
	},
	{
		ID:          "skin_steampunk",
		Name:        "Steampunk Outfit",
		Description: "Brass goggles included.",
		Cost:        300,
		Type:        ItemTypeSkin,
		Value:       "steampunk",
	},
	{
		ID:          "skin_paladin",
		Name:        "Paladin Regalia",
		Description: "Ceremonial plate for the truly committed.",
		Cost:        500,
		Type:        ItemTypeSkin,
		Value:       "paladin",
	},
	{
		ID:          "booster_xp_surge",
		Name:        "XP Surge",
		Description: "A celebratory banner for your next mission run.",
		Cost:        100,
		Type:        ItemTypeBooster,
		Value:       "xp_surge",
	},
}

// Catalog returns a copy of the full item list so callers cannot mutate it.
func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// ItemByID looks up a catalog item.
func ItemByID(id string) (Item, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
