package challenge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/levelup-life/levelup-service/internal/progression"
)

// DefaultCandidateCount is how many challenges a refill asks the model for.
const DefaultCandidateCount = 3

// Generator produces a fresh batch of personalized challenges for a profile.
type Generator interface {
	Generate(ctx context.Context, profile progression.Profile, now time.Time) ([]progression.Challenge, error)
	Close() error
}

// GeneratorConfig wires Gemini access.
type GeneratorConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
}

// GeminiGenerator asks Gemini for challenge candidates constrained by a JSON
// response schema.
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiGenerator returns a Generator backed by Gemini.
func NewGeminiGenerator(ctx context.Context, cfg GeneratorConfig) (Generator, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if apiKey == "" {
		return nil, errors.New("gemini api key missing")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model, maxTokens: maxTokens}, nil
}

// Close releases underlying Gemini resources.
func (g *GeminiGenerator) Close() error {
	return nil
}

// Generate requests challenge candidates and stamps them into domain
// challenges. Any malformed response surfaces as an error; the caller treats
// that as "zero challenges returned".
func (g *GeminiGenerator) Generate(ctx context.Context, profile progression.Profile, now time.Time) ([]progression.Challenge, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(profile, now), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.9)),
		MaxOutputTokens:  int32(g.maxTokens),
		ResponseMIMEType: "application/json",
		ResponseSchema:   candidateSchema(),
	})
	if err != nil {
		return nil, err
	}

	output := strings.TrimSpace(resp.Text())
	if output == "" {
		return nil, errors.New("gemini returned empty response")
	}
	return ParseCandidates([]byte(output), now)
}

func candidateSchema() *genai.Schema {
	categories := make([]string, 0, len(progression.Categories()))
	for _, c := range progression.Categories() {
		categories = append(categories, string(c))
	}

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":        {Type: genai.TypeString},
				"description":  {Type: genai.TypeString},
				"taskDetails":  {Type: genai.TypeString},
				"timeRequired": {Type: genai.TypeString},
				"xpReward":     {Type: genai.TypeInteger},
				"gemReward":    {Type: genai.TypeInteger},
				"category": {
					Type:        genai.TypeString,
					Description: "Must be one of: " + strings.Join(categories, ", "),
				},
				"difficulty": {
					Type:        genai.TypeString,
					Description: "Must be one of: Beginner, Intermediate, Advanced, Legendary",
				},
			},
			Required: []string{
				"title", "description", "taskDetails", "timeRequired",
				"xpReward", "gemReward", "category", "difficulty",
			},
		},
	}
}

func buildPrompt(p progression.Profile, now time.Time) string {
	goals := make([]string, 0, len(p.Goals))
	for _, g := range p.Goals {
		goals = append(goals, g.Label)
	}

	recent := p.History
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	titles := make([]string, 0, len(recent))
	for _, h := range recent {
		titles = append(titles, h.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d unique, highly personalized challenges for a user with the following profile:\n", DefaultCandidateCount)
	fmt.Fprintf(&b, "- Current Level: %d\n", p.Level)
	fmt.Fprintf(&b, "- Total XP: %d\n", p.TotalXP)
	fmt.Fprintf(&b, "- Personal Goals: %s\n", strings.Join(goals, ", "))
	fmt.Fprintf(&b, "- Preferences: %s\n", strings.Join(p.Preferences, ", "))
	fmt.Fprintf(&b, "- Recent History: %s\n", strings.Join(titles, ", "))
	fmt.Fprintf(&b, "- Current Time: %s\n", now.Format("3:04 PM"))
	fmt.Fprintf(&b, "- Current Day: %s\n", now.Weekday().String())
	fmt.Fprintf(&b, "- Unlocked Difficulty Tiers: %s\n", strings.Join(p.UnlockedTiers, ", "))
	b.WriteString(`
Guidelines:
1. Adjust difficulty based on unlocked tiers; never exceed the highest unlocked tier.
2. Respect the time of day: if it's morning, suggest high-energy tasks; at night, suggest calming tasks.
3. Include a 'gemReward' (currency) alongside 'xpReward'. Gems should be roughly 10-20% of the XP amount.
4. Ensure challenges are actionable and "real-world" compatible.
`)
	return b.String()
}
