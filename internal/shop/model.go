package shop

// ItemType classifies what a purchase unlocks.
type ItemType string

const (
	ItemTypeAura ItemType = "aura"
	ItemTypeSkin ItemType = "skin"
	// ItemTypeBooster items are purchasable but carry no gameplay effect yet.
	ItemTypeBooster ItemType = "booster"
)

// Item is a fixed catalog entry. Items are never created or destroyed at runtime.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cost        int      `json:"cost"`
	Type        ItemType `json:"type"`
	Value       string   `json:"value"`
}
