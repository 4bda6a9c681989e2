package progression

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Category classifies a goal or challenge.
type Category string

const (
	CategoryFitness      Category = "Fitness"
	CategoryProductivity Category = "Productivity"
	CategoryGrowth       Category = "Personal Growth"
	CategoryWellness     Category = "Wellness"
	CategoryCreativity   Category = "Creativity"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryFitness, CategoryProductivity, CategoryGrowth, CategoryWellness, CategoryCreativity:
		return true
	default:
		return false
	}
}

// Categories returns every valid category, in catalog order.
func Categories() []Category {
	return []Category{CategoryFitness, CategoryProductivity, CategoryGrowth, CategoryWellness, CategoryCreativity}
}

// Difficulty is the challenge tier label. Tiers are unlocked by level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyLegendary    Difficulty = "Legendary"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyLegendary:
		return true
	default:
		return false
	}
}

// Timestamp marshals as RFC3339 and additionally accepts the epoch-millisecond
// numbers written by older saves, so history entries survive a format migration.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := time.Parse(time.RFC3339Nano, s)
		if perr != nil {
			return perr
		}
		t.Time = parsed
		return nil
	}
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Goal is a focus area the generator personalizes challenges around.
type Goal struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
	IsCustom bool     `json:"isCustom,omitempty"`
}

// Challenge is a single generated mission. Completed entries live in the
// profile history; pending ones form the active set.
type Challenge struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	TaskDetails  string     `json:"taskDetails"`
	TimeRequired string     `json:"timeRequired"`
	XPReward     int        `json:"xpReward"`
	GemReward    int        `json:"gemReward"`
	Category     Category   `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	Completed    bool       `json:"completed"`
	CreatedAt    Timestamp  `json:"createdAt"`
}

// Profile is the single persisted player document.
type Profile struct {
	Name            string      `json:"name"`
	Level           int         `json:"level"`
	XP              int         `json:"xp"`
	TotalXP         int         `json:"totalXp"`
	Gems            int         `json:"gems"`
	Goals           []Goal      `json:"goals"`
	Preferences     []string    `json:"preferences"`
	History         []Challenge `json:"history"`
	UnlockedAvatars []string    `json:"unlockedAvatars"`
	CurrentAvatar   string      `json:"currentAvatar"`
	Aura            string      `json:"aura"`
	UnlockedAuras   []string    `json:"unlockedAuras"`
	UnlockedTiers   []string    `json:"unlockedTiers"`
}

// HasAvatar reports whether the given avatar seed has been unlocked.
func (p Profile) HasAvatar(seed string) bool {
	return contains(p.UnlockedAvatars, seed)
}

// HasAura reports whether the given aura has been unlocked.
func (p Profile) HasAura(auraID string) bool {
	return contains(p.UnlockedAuras, auraID)
}

// HasTier reports whether the given difficulty tier has been unlocked.
func (p Profile) HasTier(tier string) bool {
	return contains(p.UnlockedTiers, tier)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// LevelUpEvent describes a single level-up notification. It is emitted at
// most once per completion even when several thresholds were crossed.
type LevelUpEvent struct {
	Level   int      `json:"level"`
	Rewards []string `json:"rewards"`
}

// NewGoalID returns a fresh unique goal identifier.
func NewGoalID() string {
	return uuid.New().String()
}

// NewChallengeID returns a fresh unique challenge identifier.
func NewChallengeID() string {
	return uuid.New().String()
}
