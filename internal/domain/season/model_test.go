package season

import (
	"testing"
	"time"
)

func TestHalfOf(t *testing.T) {
	cases := map[int]int{1: 1, 19: 1, 20: 2, 38: 2}
	for week, want := range cases {
		if got := HalfOf(week); got != want {
			t.Fatalf("HalfOf(%d) = %d, want %d", week, got, want)
		}
	}

	from, to := WeekRange(HalfSecond)
	if from != 20 || to != 38 {
		t.Fatalf("unexpected second half range: %d-%d", from, to)
	}
	from, to = WeekRange(HalfFirst)
	if from != 1 || to != 19 {
		t.Fatalf("unexpected first half range: %d-%d", from, to)
	}
}

func TestPickRuleValidate(t *testing.T) {
	if err := DefaultPickRule("2024/25", HalfFirst).Validate(); err != nil {
		t.Fatalf("default rule should be valid: %v", err)
	}

	invalid := []PickRule{
		{SeasonID: "", Half: 1, MaxTimesTeamCanBePicked: 1, MaxTimesOppositionCanBeTargeted: 1},
		{SeasonID: "s", Half: 3, MaxTimesTeamCanBePicked: 1, MaxTimesOppositionCanBeTargeted: 1},
		{SeasonID: "s", Half: 1, MaxTimesTeamCanBePicked: 0, MaxTimesOppositionCanBeTargeted: 1},
		{SeasonID: "s", Half: 2, MaxTimesTeamCanBePicked: 1, MaxTimesOppositionCanBeTargeted: 0},
	}
	for i, rule := range invalid {
		if err := rule.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, rule)
		}
	}
}

func TestGameweekValidate(t *testing.T) {
	if err := (Gameweek{SeasonID: "s", Number: 39}).Validate(); err == nil {
		t.Fatalf("expected error for week 39")
	}
	if err := (Gameweek{SeasonID: "s", Number: 5, EliminationCount: 101}).Validate(); err == nil {
		t.Fatalf("expected error for elimination count above limit")
	}
	if err := (Gameweek{SeasonID: "s", Number: 5, EliminationCount: 100}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGameweekClaimable(t *testing.T) {
	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Minute)
	old := now.Add(-time.Hour)
	lease := 10 * time.Minute

	cases := []struct {
		name string
		gw   Gameweek
		want bool
	}{
		{"not processed", Gameweek{EliminationState: EliminationNotProcessed}, true},
		{"fresh claim", Gameweek{EliminationState: EliminationProcessing, EliminationClaimedAt: &recent}, false},
		{"stale claim", Gameweek{EliminationState: EliminationProcessing, EliminationClaimedAt: &old}, true},
		{"claim without timestamp", Gameweek{EliminationState: EliminationProcessing}, true},
		{"processed", Gameweek{EliminationState: EliminationProcessed, EliminationClaimedAt: &old}, false},
	}
	for _, tc := range cases {
		if got := tc.gw.Claimable(now, lease); got != tc.want {
			t.Fatalf("%s: Claimable = %v, want %v", tc.name, got, tc.want)
		}
	}

	if (Gameweek{EliminationState: EliminationProcessing, EliminationClaimedAt: &old}).Claimable(now, 0) {
		t.Fatalf("a zero lease must never take over a claim")
	}
}
