package challenge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/levelup-life/levelup-service/internal/progression"
)

// candidate is the wire shape of a single generated challenge payload.
type candidate struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TaskDetails  string `json:"taskDetails"`
	TimeRequired string `json:"timeRequired"`
	XPReward     *int   `json:"xpReward"`
	GemReward    *int   `json:"gemReward"`
	Category     string `json:"category"`
	Difficulty   string `json:"difficulty"`
}

// ParseCandidates decodes a generated payload into domain challenges, stamping
// each with a fresh id, completed=false and the given creation time. A payload
// that is not valid JSON or contains no usable candidates is an error.
func ParseCandidates(data []byte, now time.Time) ([]progression.Challenge, error) {
	var raw []candidate
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	challenges := make([]progression.Challenge, 0, len(raw))
	for _, c := range raw {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			continue
		}

		xp := 0
		if c.XPReward != nil && *c.XPReward > 0 {
			xp = *c.XPReward
		}

		// A missing gemReward marks the legacy payload shape; the sentinel makes
		// the progression engine fall back to the XP-derived amount.
		gems := -1
		if c.GemReward != nil && *c.GemReward >= 0 {
			gems = *c.GemReward
		}

		category := progression.Category(strings.TrimSpace(c.Category))
		if !category.IsValid() {
			category = progression.CategoryProductivity
		}

		difficulty := progression.Difficulty(strings.TrimSpace(c.Difficulty))
		if !difficulty.IsValid() {
			difficulty = progression.DifficultyBeginner
		}

		challenges = append(challenges, progression.Challenge{
			ID:           progression.NewChallengeID(),
			Title:        title,
			Description:  strings.TrimSpace(c.Description),
			TaskDetails:  strings.TrimSpace(c.TaskDetails),
			TimeRequired: strings.TrimSpace(c.TimeRequired),
			XPReward:     xp,
			GemReward:    gems,
			Category:     category,
			Difficulty:   difficulty,
			Completed:    false,
			CreatedAt:    progression.NewTimestamp(now),
		})
	}

	if len(challenges) == 0 {
		return nil, errors.New("no usable candidates in response")
	}
	return challenges, nil
}
