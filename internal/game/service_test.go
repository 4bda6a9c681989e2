package game

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/levelup-life/levelup-service/internal/progression"
	"github.com/levelup-life/levelup-service/internal/shop"
)

type fakeStore struct {
	loadProfileFn    func(context.Context) (progression.Profile, error)
	loadChallengesFn func(context.Context) ([]progression.Challenge, error)

	savedProfiles   []progression.Profile
	savedChallenges [][]progression.Challenge
	saveErr         error
}

func (f *fakeStore) LoadProfile(ctx context.Context) (progression.Profile, error) {
	if f.loadProfileFn != nil {
		return f.loadProfileFn(ctx)
	}
	return progression.DefaultProfile(), nil
}

func (f *fakeStore) SaveProfile(_ context.Context, p progression.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedProfiles = append(f.savedProfiles, p)
	return nil
}

func (f *fakeStore) LoadChallenges(ctx context.Context) ([]progression.Challenge, error) {
	if f.loadChallengesFn != nil {
		return f.loadChallengesFn(ctx)
	}
	return []progression.Challenge{}, nil
}

func (f *fakeStore) SaveChallenges(_ context.Context, list []progression.Challenge) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	saved := make([]progression.Challenge, len(list))
	copy(saved, list)
	f.savedChallenges = append(f.savedChallenges, saved)
	return nil
}

func (f *fakeStore) Close() error { return nil }

type fakeGenerator struct {
	generateFn func(context.Context, progression.Profile, time.Time) ([]progression.Challenge, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, p progression.Profile, now time.Time) ([]progression.Challenge, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, p, now)
	}
	return nil, errors.New("generateFn not provided")
}

func (f *fakeGenerator) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func activeChallenge(id string, xp int) progression.Challenge {
	return progression.Challenge{
		ID:         id,
		Title:      "Challenge " + id,
		XPReward:   xp,
		GemReward:  xp / 10,
		Category:   progression.CategoryProductivity,
		Difficulty: progression.DifficultyBeginner,
		CreatedAt:  progression.NewTimestamp(time.Now()),
	}
}

func newTestService(t *testing.T, st *fakeStore, gen *fakeGenerator) *Service {
	t.Helper()
	svc, err := New(context.Background(), st, gen, testLogger())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return svc
}

func batch(ids ...string) []progression.Challenge {
	out := make([]progression.Challenge, 0, len(ids))
	for _, id := range ids {
		out = append(out, activeChallenge(id, 100))
	}
	return out
}

func TestSyncReplacesActiveSet(t *testing.T) {
	st := &fakeStore{
		loadChallengesFn: func(context.Context) ([]progression.Challenge, error) {
			return batch("old-1", "old-2"), nil
		},
	}
	gen := &fakeGenerator{
		generateFn: func(context.Context, progression.Profile, time.Time) ([]progression.Challenge, error) {
			return batch("new-1", "new-2", "new-3"), nil
		},
	}
	svc := newTestService(t, st, gen)

	got, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("active set has %d challenges, want 3", len(got))
	}
	for _, ch := range got {
		if ch.ID == "old-1" || ch.ID == "old-2" {
			t.Fatal("refill must replace, not merge, the previous batch")
		}
	}
	if len(st.savedChallenges) != 1 || len(st.savedChallenges[0]) != 3 {
		t.Fatalf("replacement batch not persisted: %+v", st.savedChallenges)
	}
}

func TestSyncFailureIsAbsorbed(t *testing.T) {
	st := &fakeStore{
		loadChallengesFn: func(context.Context) ([]progression.Challenge, error) {
			return batch("keep-1", "keep-2"), nil
		},
	}
	gen := &fakeGenerator{
		generateFn: func(context.Context, progression.Profile, time.Time) ([]progression.Challenge, error) {
			return nil, errors.New("model unavailable")
		},
	}
	svc := newTestService(t, st, gen)

	got, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("generation failure must be absorbed, got error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "keep-1" {
		t.Fatalf("active set changed on failure: %+v", got)
	}
	if len(st.savedChallenges) != 0 {
		t.Fatal("failed sync must not write to the store")
	}
}

func TestSyncSingleFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	st := &fakeStore{}
	gen := &fakeGenerator{
		generateFn: func(context.Context, progression.Profile, time.Time) ([]progression.Challenge, error) {
			close(entered)
			<-release
			return batch("late-1"), nil
		},
	}
	svc := newTestService(t, st, gen)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Sync(context.Background())
		done <- err
	}()

	<-entered
	if _, err := svc.Sync(context.Background()); !errors.Is(err, ErrSyncInFlight) {
		t.Fatalf("expected ErrSyncInFlight for overlapping sync, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	// The guard clears once the first sync finishes.
	gen.generateFn = func(context.Context, progression.Profile, time.Time) ([]progression.Challenge, error) {
		return batch("after-1"), nil
	}
	if _, err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("follow-up sync failed: %v", err)
	}
}

func TestCompleteAppliesProgressionAndPersists(t *testing.T) {
	st := &fakeStore{
		loadChallengesFn: func(context.Context) ([]progression.Challenge, error) {
			return batch("a", "b"), nil
		},
	}
	svc := newTestService(t, st, &fakeGenerator{})

	res, err := svc.Complete(context.Background(), "a")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if !res.Completed {
		t.Fatal("expected completion")
	}
	if res.Profile.TotalXP != 100 || res.XPAwarded != 100 {
		t.Fatalf("xp not applied: %+v", res)
	}
	if len(res.Profile.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(res.Profile.History))
	}
	if got := svc.ActiveChallenges(); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("completed challenge not removed from active set: %+v", got)
	}
	if len(st.savedProfiles) != 1 || len(st.savedChallenges) != 1 {
		t.Fatalf("write-through missing: %d profile saves, %d challenge saves",
			len(st.savedProfiles), len(st.savedChallenges))
	}
}

func TestCompleteUnknownIDIsNoop(t *testing.T) {
	st := &fakeStore{
		loadChallengesFn: func(context.Context) ([]progression.Challenge, error) {
			return batch("a"), nil
		},
	}
	svc := newTestService(t, st, &fakeGenerator{})

	res, err := svc.Complete(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unknown id must be a no-op, got error: %v", err)
	}
	if res.Completed {
		t.Fatal("unknown id reported as completed")
	}
	if len(st.savedProfiles) != 0 || len(st.savedChallenges) != 0 {
		t.Fatal("no-op completion must not persist anything")
	}
	if got := svc.ActiveChallenges(); len(got) != 1 {
		t.Fatalf("active set changed: %+v", got)
	}
}

func TestPurchaseWritesThrough(t *testing.T) {
	st := &fakeStore{
		loadProfileFn: func(context.Context) (progression.Profile, error) {
			p := progression.DefaultProfile()
			p.Gems = 500
			return p, nil
		},
	}
	svc := newTestService(t, st, &fakeGenerator{})

	updated, err := svc.Purchase(context.Background(), "aura_gold")
	if err != nil {
		t.Fatalf("Purchase returned error: %v", err)
	}
	if !updated.HasAura("aura_gold") {
		t.Fatal("aura not unlocked")
	}
	if len(st.savedProfiles) != 1 {
		t.Fatalf("purchase not persisted: %d saves", len(st.savedProfiles))
	}

	if _, err := svc.Purchase(context.Background(), "missing_item"); !errors.Is(err, shop.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestToggleGoalSelectsAndDeselects(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(t, st, &fakeGenerator{})

	// The default profile starts with presets 1 and 2 selected.
	updated, err := svc.ToggleGoal(context.Background(), "4")
	if err != nil {
		t.Fatalf("selecting preset failed: %v", err)
	}
	if len(updated.Goals) != 3 {
		t.Fatalf("goal count = %d, want 3", len(updated.Goals))
	}

	updated, err = svc.ToggleGoal(context.Background(), "4")
	if err != nil {
		t.Fatalf("deselecting failed: %v", err)
	}
	if len(updated.Goals) != 2 {
		t.Fatalf("goal count = %d, want 2", len(updated.Goals))
	}

	if _, err := svc.ToggleGoal(context.Background(), "nope"); !errors.Is(err, ErrUnknownGoal) {
		t.Fatalf("expected ErrUnknownGoal, got %v", err)
	}
}

func TestAddCustomGoal(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(t, st, &fakeGenerator{})

	goal, err := svc.AddGoal(context.Background(), "Learn the guitar", progression.CategoryCreativity)
	if err != nil {
		t.Fatalf("AddGoal returned error: %v", err)
	}
	if goal.ID == "" || !goal.IsCustom {
		t.Fatalf("bad custom goal: %+v", goal)
	}

	if _, err := svc.AddGoal(context.Background(), "  ", progression.CategoryFitness); !errors.Is(err, ErrEmptyGoalLabel) {
		t.Fatalf("expected ErrEmptyGoalLabel, got %v", err)
	}
	if _, err := svc.AddGoal(context.Background(), "x", progression.Category("Nope")); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestSetAuraRequiresOwnership(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, &fakeGenerator{})

	if _, err := svc.SetAura(context.Background(), "aura_gold"); !errors.Is(err, shop.ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
}
