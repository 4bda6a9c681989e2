package shop

import (
	"slices"

	"github.com/levelup-life/levelup-service/internal/progression"
)

// Owned reports whether the profile already holds the item's unlock. Boosters
// record no unlock, so they are never "owned" and can be bought repeatedly.
func Owned(p progression.Profile, item Item) bool {
	switch item.Type {
	case ItemTypeAura:
		return p.HasAura(item.ID)
	case ItemTypeSkin:
		return p.HasAvatar(item.Value)
	default:
		return false
	}
}

// Purchase validates and applies a catalog purchase, returning the updated
// profile. The input profile is left untouched on rejection.
func Purchase(p progression.Profile, item Item) (progression.Profile, error) {
	if Owned(p, item) {
		return p, ErrAlreadyOwned
	}
	if p.Gems < item.Cost {
		return p, ErrInsufficientGems
	}

	p.Gems -= item.Cost
	switch item.Type {
	case ItemTypeAura:
		p.UnlockedAuras = append(slices.Clone(p.UnlockedAuras), item.ID)
	case ItemTypeSkin:
		p.UnlockedAvatars = append(slices.Clone(p.UnlockedAvatars), item.Value)
	case ItemTypeBooster:
		// No unlock set for boosters; the purchase is cosmetic-only.
	}
	return p, nil
}

// SetActiveAvatar equips an unlocked avatar seed.
func SetActiveAvatar(p progression.Profile, seed string) (progression.Profile, error) {
	if !p.HasAvatar(seed) {
		return p, ErrNotOwned
	}
	p.CurrentAvatar = seed
	return p, nil
}

// SetActiveAura equips an unlocked aura. The empty string clears the aura.
func SetActiveAura(p progression.Profile, auraID string) (progression.Profile, error) {
	if auraID != "" && !p.HasAura(auraID) {
		return p, ErrNotOwned
	}
	p.Aura = auraID
	return p, nil
}
