package store

import (
	"encoding/json"
	"fmt"

	"github.com/levelup-life/levelup-service/internal/progression"
)

// DecodeProfile merges a stored profile document over the default profile, so
// saves written before a field existed pick up that field's default: gems stay
// at the default only when the key is absent (an explicit 0 survives), and
// unlockedAuras defaults to an empty set. A document that cannot be parsed
// yields the default profile alongside the decode error.
func DecodeProfile(body []byte) (progression.Profile, error) {
	p := progression.DefaultProfile()
	if err := json.Unmarshal(body, &p); err != nil {
		return progression.DefaultProfile(), fmt.Errorf("decode profile: %w", err)
	}
	return normalizeProfile(p), nil
}

// EncodeProfile serializes the profile document.
func EncodeProfile(p progression.Profile) ([]byte, error) {
	return json.Marshal(p)
}

// DecodeChallenges decodes the active challenge list. Each entry is merged
// over a per-challenge default so entries saved without a gemReward keep the
// sentinel that triggers the XP-derived fallback.
func DecodeChallenges(body []byte) ([]progression.Challenge, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return []progression.Challenge{}, fmt.Errorf("decode challenges: %w", err)
	}

	list := make([]progression.Challenge, 0, len(raw))
	for _, entry := range raw {
		ch := progression.Challenge{GemReward: -1}
		if err := json.Unmarshal(entry, &ch); err != nil {
			return []progression.Challenge{}, fmt.Errorf("decode challenge entry: %w", err)
		}
		list = append(list, ch)
	}
	return list, nil
}

// EncodeChallenges serializes the active challenge list.
func EncodeChallenges(list []progression.Challenge) ([]byte, error) {
	if list == nil {
		list = []progression.Challenge{}
	}
	return json.Marshal(list)
}

// normalizeProfile restores the invariants a hand-edited or pre-migration save
// may violate: level and xp are re-derived from totalXp, unlock sets are
// non-nil, and equipped cosmetics must come from their unlocked sets.
func normalizeProfile(p progression.Profile) progression.Profile {
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	p.Level = progression.LevelForTotalXP(p.TotalXP)
	p.XP = progression.XPWithinLevel(p.TotalXP)

	if p.Gems < 0 {
		p.Gems = 0
	}
	if p.UnlockedAuras == nil {
		p.UnlockedAuras = []string{}
	}
	if p.History == nil {
		p.History = []progression.Challenge{}
	}
	if len(p.UnlockedAvatars) == 0 {
		p.UnlockedAvatars = []string{progression.AvatarSeeds()[0]}
	}
	if len(p.UnlockedTiers) == 0 {
		p.UnlockedTiers = []string{string(progression.DifficultyBeginner)}
	}
	if !p.HasAvatar(p.CurrentAvatar) {
		p.CurrentAvatar = p.UnlockedAvatars[0]
	}
	if p.Aura != "" && !p.HasAura(p.Aura) {
		p.Aura = ""
	}
	return p
}
