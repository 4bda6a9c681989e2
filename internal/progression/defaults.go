package progression

// LevelThreshold is the XP span of a single level. Level and in-level XP are
// always derived from total XP against this constant.
const LevelThreshold = 1000

// LevelUpGemBonus is the flat gem grant awarded on every level-up.
const LevelUpGemBonus = 50

// DefaultGems is the starting gem balance, also applied to saves that predate
// the gem economy.
const DefaultGems = 100

// AvatarSeeds is the fixed avatar appearance sequence. Level-ups unlock the
// seed at index (level mod len). Keep order stable; saves reference seeds by value.
func AvatarSeeds() []string {
	return []string{
		"adventurer", "knight", "mage", "rogue", "monk",
		"cyberpunk", "steampunk", "paladin", "druid", "scholar",
	}
}

// PresetGoals is the built-in goal catalog offered by the settings panel.
// IDs must remain stable because profiles store goal selections by id.
func PresetGoals() []Goal {
	return []Goal{
		{ID: "1", Label: "Improve physical strength", Category: CategoryFitness},
		{ID: "2", Label: "Read more books", Category: CategoryGrowth},
		{ID: "3", Label: "Master coding skills", Category: CategoryProductivity},
		{ID: "4", Label: "Practice mindfulness", Category: CategoryWellness},
	}
}

// PresetGoalByID looks up a built-in goal.
func PresetGoalByID(id string) (Goal, bool) {
	for _, g := range PresetGoals() {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// DefaultProfile returns the profile a fresh installation starts from.
func DefaultProfile() Profile {
	seeds := AvatarSeeds()
	return Profile{
		Name:            "Player 1",
		Level:           1,
		XP:              0,
		TotalXP:         0,
		Gems:            DefaultGems,
		Goals:           PresetGoals()[:2],
		Preferences:     []string{"Outdoor activities", "Mental health", "Reading"},
		History:         []Challenge{},
		UnlockedAvatars: []string{seeds[0]},
		CurrentAvatar:   seeds[0],
		Aura:            "",
		UnlockedAuras:   []string{},
		UnlockedTiers:   []string{string(DifficultyBeginner)},
	}
}
