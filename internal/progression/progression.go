package progression

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tierUnlocks maps exact level values to the difficulty tier and reward
// description they unlock. The table is evaluated once against the new level,
// not once per crossed threshold.
var tierUnlocks = []struct {
	level  int
	tier   Difficulty
	reward string
}{
	{3, DifficultyIntermediate, "New Tier: Intermediate Missions"},
	{7, DifficultyAdvanced, "New Tier: Advanced Hero Missions"},
	{15, DifficultyLegendary, "Ultimate Tier: Legendary Missions"},
}

// fillerReward keeps the level-up notification non-empty when no avatar or
// tier unlock triggered.
const fillerReward = "Bonus Skill Point (Visual)"

var titleCaser = cases.Title(language.English)

// LevelForTotalXP derives the level for a lifetime XP total.
func LevelForTotalXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/LevelThreshold + 1
}

// XPWithinLevel derives the in-level XP progress for a lifetime XP total.
func XPWithinLevel(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP % LevelThreshold
}

// GemAward returns the gems granted for completing the challenge. A negative
// gem reward marks a legacy challenge without one; those fall back to 10% of
// the XP reward.
func GemAward(ch Challenge) int {
	if ch.GemReward >= 0 {
		return ch.GemReward
	}
	return ch.XPReward / 10
}

// ApplyCompletion applies a completed challenge to the profile and returns the
// updated profile along with a level-up event when a threshold was crossed.
// The input challenge is expected to come from the active set; the caller is
// responsible for removing it there. The history entry carries the completion
// time in createdAt, overwriting the generation time.
func ApplyCompletion(p Profile, ch Challenge, now time.Time) (Profile, *LevelUpEvent) {
	oldLevel := p.Level

	p.TotalXP += ch.XPReward
	p.Level = LevelForTotalXP(p.TotalXP)
	p.XP = XPWithinLevel(p.TotalXP)
	p.Gems += GemAward(ch)

	entry := ch
	entry.Completed = true
	entry.CreatedAt = NewTimestamp(now)
	p.History = append(slices.Clone(p.History), entry)

	if p.Level <= oldLevel {
		return p, nil
	}

	var rewards []string

	seeds := AvatarSeeds()
	seed := seeds[p.Level%len(seeds)]
	if !p.HasAvatar(seed) {
		p.UnlockedAvatars = append(slices.Clone(p.UnlockedAvatars), seed)
		rewards = append(rewards, fmt.Sprintf("New Appearance: %s", titleCaser.String(seed)))
	}

	for _, unlock := range tierUnlocks {
		if p.Level == unlock.level && !p.HasTier(string(unlock.tier)) {
			p.UnlockedTiers = append(slices.Clone(p.UnlockedTiers), string(unlock.tier))
			rewards = append(rewards, unlock.reward)
		}
	}

	p.Gems += LevelUpGemBonus
	rewards = append(rewards, fmt.Sprintf("Level Bonus: +%d Gems", LevelUpGemBonus))

	if len(rewards) == 1 {
		// Only the flat gem bonus triggered; pad the notification.
		rewards = append(rewards, fillerReward)
	}

	return p, &LevelUpEvent{Level: p.Level, Rewards: rewards}
}
