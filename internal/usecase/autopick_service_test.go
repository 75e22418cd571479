package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/last-man-standing/internal/platform/keylock"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

type recordingNotifier struct {
	mu          sync.Mutex
	assignments []AutoPickAssignment
}

func (n *recordingNotifier) NotifyAutoPick(_ context.Context, assignment AutoPickAssignment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assignments = append(n.assignments, assignment)
	return nil
}

func seedPick(ds memory.Dataset, userID string, week int, teamID string) memory.Dataset {
	ds.Picks = append(ds.Picks, pick.Pick{
		ID:             "seed-" + userID + "-" + teamID,
		UserID:         userID,
		SeasonID:       testSeasonID,
		GameweekNumber: week,
		TeamID:         teamID,
		FixtureID:      fixtureID(ds, week, teamID),
	})
	return ds
}

func withNotifier(env *testEnv, notifier AutoPickNotifier) {
	svc := NewAutoPickService(
		env.store.Seasons, env.store.Fixtures, env.store.Teams, env.store.Picks,
		env.store.Participations, env.store.Eliminations,
		&sequenceIDGenerator{prefix: "auto"}, keylock.New(), notifier, logging.NewNop(), 2,
	)
	svc.now = env.clock.Now
	env.autoPicks = svc
}

func TestAutoPickService_AssignsFirstLegalTeam(t *testing.T) {
	t.Parallel()

	ds := leagueDataset(4, 1, "alice", "bob")
	ds = seedPick(ds, "bob", 1, "t03")
	env := newTestEnv(ds, weekDeadline(1).Add(time.Minute))
	notifier := &recordingNotifier{}
	withNotifier(env, notifier)
	ctx := context.Background()

	result, err := env.autoPicks.AssignMissedPicks(ctx, testSeasonID, 1)
	if err != nil {
		t.Fatalf("assign missed picks: %v", err)
	}
	if result.Candidates != 1 || result.Assigned != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	stored, exists, _ := env.store.Picks.GetByUserGameweek(ctx, "alice", testSeasonID, 1)
	if !exists || stored.TeamID != "t01" || !stored.IsAutoAssigned {
		t.Fatalf("expected auto-assigned t01 for alice, got %+v", stored)
	}
	bob, _, _ := env.store.Picks.GetByUserGameweek(ctx, "bob", testSeasonID, 1)
	if bob.IsAutoAssigned || bob.TeamID != "t03" {
		t.Fatalf("existing pick must be untouched: %+v", bob)
	}
	if len(notifier.assignments) != 1 || notifier.assignments[0].UserID != "alice" {
		t.Fatalf("unexpected notifications: %+v", notifier.assignments)
	}

	rerun, err := env.autoPicks.AssignMissedPicks(ctx, testSeasonID, 1)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if rerun.Candidates != 0 || rerun.Assigned != 0 {
		t.Fatalf("rerun must find nothing to do: %+v", rerun)
	}
}

func TestAutoPickService_RespectsReuseRules(t *testing.T) {
	t.Parallel()

	// Week 3 pairs t01-t02 and t03-t04; only t04 is still legal for alice.
	ds := leagueDataset(4, 3, "alice")
	ds = seedPick(ds, "alice", 1, "t01")
	ds = seedPick(ds, "alice", 2, "t03")
	env := newTestEnv(ds, weekDeadline(3).Add(time.Minute))

	result, err := env.autoPicks.AssignMissedPicks(context.Background(), testSeasonID, 3)
	if err != nil {
		t.Fatalf("assign missed picks: %v", err)
	}
	if result.Assigned != 1 || len(result.Assignments) != 1 || result.Assignments[0].TeamID != "t04" {
		t.Fatalf("expected last legal team t04, got %+v", result)
	}
}

func TestAutoPickService_NoLegalTeam(t *testing.T) {
	t.Parallel()

	ds := leagueDataset(2, 3, "alice")
	ds = seedPick(ds, "alice", 1, "t01")
	ds = seedPick(ds, "alice", 2, "t02")
	env := newTestEnv(ds, weekDeadline(3).Add(time.Minute))
	ctx := context.Background()

	result, err := env.autoPicks.AssignMissedPicks(ctx, testSeasonID, 3)
	if err != nil {
		t.Fatalf("assign missed picks: %v", err)
	}
	if result.Assigned != 0 || result.Failed != 1 {
		t.Fatalf("expected one failure, got %+v", result)
	}
	if result.Failures[0].UserID != "alice" || result.Failures[0].Reason != "no legal team available" {
		t.Fatalf("unexpected failure: %+v", result.Failures)
	}
	if _, exists, _ := env.store.Picks.GetByUserGameweek(ctx, "alice", testSeasonID, 3); exists {
		t.Fatalf("no pick must be created without a legal team")
	}
}

func TestAutoPickService_SkipsEliminatedUsersAndScores(t *testing.T) {
	t.Parallel()

	ds := leagueDataset(4, 1, "alice", "bob")
	ds.Eliminations = []elimination.UserElimination{{ID: "e1", UserID: "bob", SeasonID: testSeasonID, GameweekNumber: 1, Position: 2}}
	ds.Fixtures[0].Status = fixture.StatusFinished
	ds.Fixtures[0].HomeScore = intPtr(1)
	ds.Fixtures[0].AwayScore = intPtr(0)
	env := newTestEnv(ds, weekDeadline(1).Add(time.Hour))
	ctx := context.Background()

	result, err := env.autoPicks.AssignMissedPicks(ctx, testSeasonID, 1)
	if err != nil {
		t.Fatalf("assign missed picks: %v", err)
	}
	if result.Candidates != 1 || result.Assigned != 1 {
		t.Fatalf("eliminated users are not candidates: %+v", result)
	}
	stored, _, _ := env.store.Picks.GetByUserGameweek(ctx, "alice", testSeasonID, 1)
	if stored.TeamID != ds.Fixtures[0].HomeTeamID || stored.Points != pick.PointsWin {
		t.Fatalf("auto pick on a finished fixture must be scored: %+v", stored)
	}
}

func TestAutoPickService_DeadlineNotPassed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(leagueDataset(4, 1, "alice"), weekDeadline(1))

	_, err := env.autoPicks.AssignMissedPicks(context.Background(), testSeasonID, 1)
	if !errors.Is(err, ErrDeadlineNotPassed) {
		t.Fatalf("expected deadline not passed, got %v", err)
	}
}

func TestAutoPickService_AssignAllMissedPicks(t *testing.T) {
	t.Parallel()

	ds := leagueDataset(4, 3, "alice", "bob")
	// Week 1 is fully covered, week 2 needs bob, week 3 is still open.
	ds = seedPick(ds, "alice", 1, "t01")
	ds = seedPick(ds, "bob", 1, "t02")
	ds = seedPick(ds, "alice", 2, "t03")
	env := newTestEnv(ds, weekDeadline(2).Add(time.Minute))
	ctx := context.Background()

	batch, err := env.autoPicks.AssignAllMissedPicks(ctx)
	if err != nil {
		t.Fatalf("assign all missed picks: %v", err)
	}
	if len(batch.Gameweeks) != 1 || batch.Gameweeks[0].GameweekNumber != 2 {
		t.Fatalf("expected only week 2 processed, got %+v", batch.Gameweeks)
	}
	if batch.Assigned != 1 || batch.Failed != 0 {
		t.Fatalf("unexpected batch totals: %+v", batch)
	}
	if _, exists, _ := env.store.Picks.GetByUserGameweek(ctx, "bob", testSeasonID, 2); !exists {
		t.Fatalf("expected bob auto-picked in week 2")
	}
	if _, exists, _ := env.store.Picks.GetByUserGameweek(ctx, "alice", testSeasonID, 3); exists {
		t.Fatalf("week 3 deadline has not passed")
	}
}

func TestAutoPickService_CancelledContext(t *testing.T) {
	t.Parallel()

	env := newTestEnv(leagueDataset(4, 1, "alice", "bob", "carol"), weekDeadline(1).Add(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := env.autoPicks.AssignMissedPicks(ctx, testSeasonID, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if result.Assigned != 0 || result.Skipped != result.Candidates {
		t.Fatalf("cancelled run must skip every candidate: %+v", result)
	}
}
