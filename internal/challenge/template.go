package challenge

import (
	"context"
	"time"

	"github.com/levelup-life/levelup-service/internal/progression"
)

// TemplateGenerator is a deterministic fallback used when Gemini is not
// configured. It serves a canned rotation matched to the highest unlocked tier
// so local development works without an API key.
type TemplateGenerator struct{}

// NewTemplateGenerator returns the fallback generator.
func NewTemplateGenerator() Generator {
	return &TemplateGenerator{}
}

// Close is a no-op for the template generator.
func (t *TemplateGenerator) Close() error { return nil }

// Generate returns a fixed batch scaled to the profile's top tier.
func (t *TemplateGenerator) Generate(_ context.Context, profile progression.Profile, now time.Time) ([]progression.Challenge, error) {
	tier := highestTier(profile)
	mult := tierMultiplier(tier)

	templates := []struct {
		title, description, details, duration string
		baseXP                                int
		category                              progression.Category
	}{
		{
			title:       "Deep Work Sprint",
			description: "One distraction-free block on your most important task.",
			details:     "Silence notifications, pick a single task and work it until the timer ends.",
			duration:    "45 minutes",
			baseXP:      100,
			category:    progression.CategoryProductivity,
		},
		{
			title:       "Move Your Body",
			description: "Get your heart rate up before the day swallows you.",
			details:     "A brisk walk, a short run or a bodyweight circuit all count.",
			duration:    "30 minutes",
			baseXP:      80,
			category:    progression.CategoryFitness,
		},
		{
			title:       "Wind-Down Pages",
			description: "End the day with a book instead of a feed.",
			details:     "Read anything on paper or e-ink. No secondary screens.",
			duration:    "20 minutes",
			baseXP:      60,
			category:    progression.CategoryGrowth,
		},
	}

	out := make([]progression.Challenge, 0, len(templates))
	for _, tpl := range templates {
		xp := tpl.baseXP * mult
		out = append(out, progression.Challenge{
			ID:           progression.NewChallengeID(),
			Title:        tpl.title,
			Description:  tpl.description,
			TaskDetails:  tpl.details,
			TimeRequired: tpl.duration,
			XPReward:     xp,
			GemReward:    xp / 10,
			Category:     tpl.category,
			Difficulty:   tier,
			Completed:    false,
			CreatedAt:    progression.NewTimestamp(now),
		})
	}
	return out, nil
}

func highestTier(p progression.Profile) progression.Difficulty {
	order := []progression.Difficulty{
		progression.DifficultyLegendary,
		progression.DifficultyAdvanced,
		progression.DifficultyIntermediate,
	}
	for _, tier := range order {
		if p.HasTier(string(tier)) {
			return tier
		}
	}
	return progression.DifficultyBeginner
}

func tierMultiplier(d progression.Difficulty) int {
	switch d {
	case progression.DifficultyLegendary:
		return 5
	case progression.DifficultyAdvanced:
		return 3
	case progression.DifficultyIntermediate:
		return 2
	default:
		return 1
	}
}
