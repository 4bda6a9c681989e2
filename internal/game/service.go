package game

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/levelup-life/levelup-service/internal/challenge"
	"github.com/levelup-life/levelup-service/internal/progression"
	"github.com/levelup-life/levelup-service/internal/shop"
	"github.com/levelup-life/levelup-service/internal/store"
)

// Service owns the one profile and the one active challenge set of this
// installation. Every mutation goes through it, is serialized behind its
// mutex, and is written through to the store before returning.
type Service struct {
	logger    *slog.Logger
	store     store.Store
	generator challenge.Generator

	mu      sync.Mutex
	profile progression.Profile
	active  []progression.Challenge
	syncing bool
}

// CompleteResult describes the outcome of a challenge completion.
type CompleteResult struct {
	Completed   bool                      `json:"completed"`
	XPAwarded   int                       `json:"xpAwarded"`
	GemsAwarded int                       `json:"gemsAwarded"`
	LevelUp     *progression.LevelUpEvent `json:"levelUp,omitempty"`
	Profile     progression.Profile       `json:"profile"`
}

// New loads persisted state and returns a ready controller. Profile and
// challenge list load concurrently. A document that fails to decode is logged
// and replaced by defaults so a corrupt save never blocks startup.
func New(ctx context.Context, st store.Store, gen challenge.Generator, logger *slog.Logger) (*Service, error) {
	s := &Service{logger: logger, store: st, generator: gen}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := st.LoadProfile(gctx)
		if err != nil {
			logger.Warn("stored profile unreadable, starting from defaults", "error", err)
		}
		s.profile = p
		return nil
	})
	g.Go(func() error {
		list, err := st.LoadChallenges(gctx)
		if err != nil {
			logger.Warn("stored challenges unreadable, starting empty", "error", err)
		}
		s.active = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// Profile returns the current profile snapshot.
func (s *Service) Profile() progression.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// ActiveChallenges returns the current active set.
func (s *Service) ActiveChallenges() []progression.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.active)
}

// Complete applies the completion of an active challenge: progression, gem
// award, history append and removal from the active set. An id not present in
// the active set is a no-op, not an error.
func (s *Service) Complete(ctx context.Context, id string) (CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, ch := range s.active {
		if ch.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return CompleteResult{Completed: false, Profile: s.profile}, nil
	}

	ch := s.active[idx]
	updated, event := progression.ApplyCompletion(s.profile, ch, time.Now())

	remaining := slices.Clone(s.active)
	remaining = append(remaining[:idx], remaining[idx+1:]...)

	s.profile = updated
	s.active = remaining

	if err := s.store.SaveProfile(ctx, s.profile); err != nil {
		return CompleteResult{}, fmt.Errorf("save profile: %w", err)
	}
	if err := s.store.SaveChallenges(ctx, s.active); err != nil {
		return CompleteResult{}, fmt.Errorf("save challenges: %w", err)
	}

	return CompleteResult{
		Completed:   true,
		XPAwarded:   ch.XPReward,
		GemsAwarded: progression.GemAward(ch),
		LevelUp:     event,
		Profile:     s.profile,
	}, nil
}

// Sync asks the generator for a fresh batch and replaces the entire active
// set, discarding any uncompleted leftovers. Failures and empty responses are
// absorbed: the previous set stays and no error is surfaced. A sync while one
// is already in flight is rejected with ErrSyncInFlight.
func (s *Service) Sync(ctx context.Context) ([]progression.Challenge, error) {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return nil, ErrSyncInFlight
	}
	s.syncing = true
	snapshot := s.profile
	s.mu.Unlock()

	generated, genErr := s.generator.Generate(ctx, snapshot, time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = false

	if genErr != nil || len(generated) == 0 {
		// No new missions. The active set keeps its prior state.
		s.logger.Warn("challenge generation yielded nothing", "error", genErr)
		return slices.Clone(s.active), nil
	}

	s.active = generated
	if err := s.store.SaveChallenges(ctx, s.active); err != nil {
		return nil, fmt.Errorf("save challenges: %w", err)
	}
	return slices.Clone(s.active), nil
}

// Rename updates the display name.
func (s *Service) Rename(ctx context.Context, name string) (progression.Profile, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return progression.Profile{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Name = trimmed
	return s.persistProfile(ctx)
}

// SetAvatar equips an unlocked avatar seed.
func (s *Service) SetAvatar(ctx context.Context, seed string) (progression.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := shop.SetActiveAvatar(s.profile, seed)
	if err != nil {
		return progression.Profile{}, err
	}
	s.profile = updated
	return s.persistProfile(ctx)
}

// SetAura equips an unlocked aura, or clears it with the empty string.
func (s *Service) SetAura(ctx context.Context, auraID string) (progression.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := shop.SetActiveAura(s.profile, auraID)
	if err != nil {
		return progression.Profile{}, err
	}
	s.profile = updated
	return s.persistProfile(ctx)
}

// ToggleGoal removes a selected goal or, for preset ids, selects it.
func (s *Service) ToggleGoal(ctx context.Context, goalID string) (progression.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.profile.Goals {
		if g.ID == goalID {
			goals := slices.Clone(s.profile.Goals)
			s.profile.Goals = append(goals[:i], goals[i+1:]...)
			return s.persistProfile(ctx)
		}
	}

	preset, ok := progression.PresetGoalByID(goalID)
	if !ok {
		return progression.Profile{}, ErrUnknownGoal
	}
	s.profile.Goals = append(slices.Clone(s.profile.Goals), preset)
	return s.persistProfile(ctx)
}

// AddGoal creates a custom goal from free text.
func (s *Service) AddGoal(ctx context.Context, label string, category progression.Category) (progression.Goal, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return progression.Goal{}, ErrEmptyGoalLabel
	}
	if !category.IsValid() {
		return progression.Goal{}, ErrInvalidCategory
	}

	goal := progression.Goal{
		ID:       progression.NewGoalID(),
		Label:    trimmed,
		Category: category,
		IsCustom: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Goals = append(slices.Clone(s.profile.Goals), goal)
	if _, err := s.persistProfile(ctx); err != nil {
		return progression.Goal{}, err
	}
	return goal, nil
}

// Purchase buys a catalog item and applies its unlock.
func (s *Service) Purchase(ctx context.Context, itemID string) (progression.Profile, error) {
	item, ok := shop.ItemByID(itemID)
	if !ok {
		return progression.Profile{}, shop.ErrUnknownItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := shop.Purchase(s.profile, item)
	if err != nil {
		return progression.Profile{}, err
	}
	s.profile = updated
	return s.persistProfile(ctx)
}

// Close releases the generator and store.
func (s *Service) Close() error {
	if err := s.generator.Close(); err != nil {
		return err
	}
	return s.store.Close()
}

// persistProfile writes the profile through to the store. Callers must hold
// the mutex.
func (s *Service) persistProfile(ctx context.Context) (progression.Profile, error) {
	if err := s.store.SaveProfile(ctx, s.profile); err != nil {
		return progression.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return s.profile, nil
}
