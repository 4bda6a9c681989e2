package progression

import (
	"strings"
	"testing"
	"time"
)

func testChallenge(xp, gems int) Challenge {
	return Challenge{
		ID:           NewChallengeID(),
		Title:        "Morning run",
		Description:  "Run 3km before work",
		TaskDetails:  "Run at an easy pace",
		TimeRequired: "30 minutes",
		XPReward:     xp,
		GemReward:    gems,
		Category:     CategoryFitness,
		Difficulty:   DifficultyBeginner,
		CreatedAt:    NewTimestamp(time.Now()),
	}
}

func TestLevelDerivation(t *testing.T) {
	cases := []struct {
		totalXP int
		level   int
		xp      int
	}{
		{0, 1, 0},
		{999, 1, 999},
		{1000, 2, 0},
		{2500, 3, 500},
		{15000, 16, 0},
	}
	for _, tc := range cases {
		if got := LevelForTotalXP(tc.totalXP); got != tc.level {
			t.Fatalf("LevelForTotalXP(%d) = %d, want %d", tc.totalXP, got, tc.level)
		}
		if got := XPWithinLevel(tc.totalXP); got != tc.xp {
			t.Fatalf("XPWithinLevel(%d) = %d, want %d", tc.totalXP, got, tc.xp)
		}
	}
}

func TestApplyCompletionCrossesThreshold(t *testing.T) {
	p := DefaultProfile()
	p.TotalXP = 950
	p.XP = 950
	p.Level = 1

	updated, event := ApplyCompletion(p, testChallenge(100, 20), time.Now())

	if updated.TotalXP != 1050 || updated.Level != 2 || updated.XP != 50 {
		t.Fatalf("unexpected progression: totalXp=%d level=%d xp=%d", updated.TotalXP, updated.Level, updated.XP)
	}
	if event == nil {
		t.Fatal("expected a level-up event")
	}
	if event.Level != 2 {
		t.Fatalf("event level = %d, want 2", event.Level)
	}
	if len(event.Rewards) == 0 {
		t.Fatal("level-up rewards must never be empty")
	}
	wantGems := DefaultGems + 20 + LevelUpGemBonus
	if updated.Gems != wantGems {
		t.Fatalf("gems = %d, want %d", updated.Gems, wantGems)
	}
}

func TestApplyCompletionNoLevelUp(t *testing.T) {
	p := DefaultProfile()
	updated, event := ApplyCompletion(p, testChallenge(100, 10), time.Now())
	if event != nil {
		t.Fatalf("unexpected level-up event: %+v", event)
	}
	if updated.Level != 1 || updated.XP != 100 {
		t.Fatalf("unexpected progression: level=%d xp=%d", updated.Level, updated.XP)
	}
}

func TestApplyCompletionAppendsHistoryWithCompletionTime(t *testing.T) {
	p := DefaultProfile()
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	completed := time.Date(2026, 1, 1, 20, 30, 0, 0, time.UTC)

	ch := testChallenge(100, 5)
	ch.CreatedAt = NewTimestamp(created)

	updated, _ := ApplyCompletion(p, ch, completed)

	if len(updated.History) != len(p.History)+1 {
		t.Fatalf("history length = %d, want %d", len(updated.History), len(p.History)+1)
	}
	entry := updated.History[len(updated.History)-1]
	if !entry.Completed {
		t.Fatal("history entry must be marked completed")
	}
	if !entry.CreatedAt.Time.Equal(completed) {
		t.Fatalf("history createdAt = %v, want completion time %v", entry.CreatedAt.Time, completed)
	}
	// The input profile must not observe the append.
	if len(p.History) != 0 {
		t.Fatalf("input profile history mutated: %d entries", len(p.History))
	}
}

func TestTierUnlockAtLevelThreeIsIdempotent(t *testing.T) {
	p := DefaultProfile()
	p.TotalXP = 1950
	p.XP = 950
	p.Level = 2

	updated, event := ApplyCompletion(p, testChallenge(100, 0), time.Now())
	if updated.Level != 3 {
		t.Fatalf("level = %d, want 3", updated.Level)
	}
	if !updated.HasTier(string(DifficultyIntermediate)) {
		t.Fatal("expected Intermediate tier unlock at level 3")
	}
	found := false
	for _, r := range event.Rewards {
		if strings.Contains(r, "Intermediate") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Intermediate reward description, got %v", event.Rewards)
	}

	// Re-applying the unlock table at the same level must not duplicate the tier.
	updated.TotalXP = 1950
	updated.Level = 2
	again, _ := ApplyCompletion(updated, testChallenge(100, 0), time.Now())
	count := 0
	for _, tier := range again.UnlockedTiers {
		if tier == string(DifficultyIntermediate) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Intermediate tier appears %d times, want 1", count)
	}
}

func TestAvatarUnlockIsIdempotent(t *testing.T) {
	seeds := AvatarSeeds()
	p := DefaultProfile()
	p.TotalXP = 900
	p.XP = 900
	p.Level = 1

	updated, _ := ApplyCompletion(p, testChallenge(200, 0), time.Now())
	seed := seeds[updated.Level%len(seeds)]
	if !updated.HasAvatar(seed) {
		t.Fatalf("expected avatar %q unlocked at level %d", seed, updated.Level)
	}

	updated.TotalXP = 900
	updated.Level = 1
	again, _ := ApplyCompletion(updated, testChallenge(200, 0), time.Now())
	count := 0
	for _, s := range again.UnlockedAvatars {
		if s == seed {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("avatar %q appears %d times, want 1", seed, count)
	}
}

func TestMultiThresholdCrossEmitsSingleEvent(t *testing.T) {
	p := DefaultProfile()

	// 2500 XP in a single completion crosses two thresholds but emits one event
	// evaluated only at the final level.
	updated, event := ApplyCompletion(p, testChallenge(2500, 0), time.Now())
	if updated.Level != 3 {
		t.Fatalf("level = %d, want 3", updated.Level)
	}
	if event == nil || event.Level != 3 {
		t.Fatalf("expected a single level-up event for level 3, got %+v", event)
	}
}

func TestGemAwardFallback(t *testing.T) {
	if got := GemAward(Challenge{XPReward: 250, GemReward: -1}); got != 25 {
		t.Fatalf("fallback gem award = %d, want 25", got)
	}
	if got := GemAward(Challenge{XPReward: 250, GemReward: 0}); got != 0 {
		t.Fatalf("explicit zero gem award = %d, want 0", got)
	}
	if got := GemAward(Challenge{XPReward: 250, GemReward: 40}); got != 40 {
		t.Fatalf("gem award = %d, want 40", got)
	}
}

func TestTimestampAcceptsLegacyEpochMillis(t *testing.T) {
	var ts Timestamp
	if err := ts.UnmarshalJSON([]byte("1700000000000")); err != nil {
		t.Fatalf("legacy epoch decode failed: %v", err)
	}
	if ts.Time.UnixMilli() != 1700000000000 {
		t.Fatalf("decoded %d, want 1700000000000", ts.Time.UnixMilli())
	}

	encoded, err := NewTimestamp(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var round Timestamp
	if err := round.UnmarshalJSON(encoded); err != nil {
		t.Fatalf("round trip decode failed: %v", err)
	}
	if !round.Time.Equal(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)) {
		t.Fatalf("round trip mismatch: %v", round.Time)
	}
}
