package usecase

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/team"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/last-man-standing/internal/platform/keylock"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

const testSeasonID = "2024/25"

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type fixedClock struct {
	now atomic.Pointer[time.Time]
}

func newFixedClock(t time.Time) *fixedClock {
	c := &fixedClock{}
	c.Set(t)
	return c
}

func (c *fixedClock) Now() time.Time { return *c.now.Load() }
func (c *fixedClock) Set(t time.Time) { c.now.Store(&t) }

// testEnv wires every service over one in-memory store.
type testEnv struct {
	store        *memory.Store
	clock        *fixedClock
	picks        *PickService
	scoring      *ScoringService
	standings    *StandingsService
	eliminations *EliminationService
	autoPicks    *AutoPickService
	seasons      *SeasonService
}

func newTestEnv(ds memory.Dataset, now time.Time) *testEnv {
	store := memory.NewStore(ds)
	clock := newFixedClock(now)
	store.Picks.WithClock(clock.Now)

	logger := logging.NewNop()
	locks := keylock.New()
	ids := &sequenceIDGenerator{prefix: "id"}

	env := &testEnv{store: store, clock: clock}
	env.picks = NewPickService(store.Seasons, store.Fixtures, store.Teams, store.Picks, ids, locks, logger)
	env.picks.now = clock.Now
	env.scoring = NewScoringService(store.Fixtures, store.Picks, logger)
	env.scoring.now = clock.Now
	env.standings = NewStandingsService(store.Seasons, store.Fixtures, store.Picks, store.Participations, store.Eliminations)
	env.eliminations = NewEliminationService(store.Seasons, store.Participations, store.Eliminations, env.standings, ids, logger)
	env.eliminations.now = clock.Now
	env.autoPicks = NewAutoPickService(store.Seasons, store.Fixtures, store.Teams, store.Picks, store.Participations, store.Eliminations, ids, locks, nil, logger, 4)
	env.autoPicks.now = clock.Now
	env.seasons = NewSeasonService(store.Seasons, logger)
	return env
}

// weekDeadline is the deadline of week n in the generated dataset.
func weekDeadline(week int) time.Time {
	return time.Date(2024, 8, 16, 18, 30, 0, 0, time.UTC).AddDate(0, 0, 7*(week-1))
}

// leagueDataset builds a season where teams t01..tNN play a round robin fixture
// list with fixed pairings per week: t(2k-1) hosts t(2k) rotated by week.
func leagueDataset(teamCount, weeks int, users ...string) memory.Dataset {
	ds := memory.Dataset{
		Seasons: []season.Season{{ID: testSeasonID, IsActive: true}},
	}
	teamIDs := make([]string, teamCount)
	for i := range teamIDs {
		teamIDs[i] = fmt.Sprintf("t%02d", i+1)
		ds.Teams = append(ds.Teams, team.Team{ID: teamIDs[i], Name: "Team " + teamIDs[i], IsActive: true})
	}

	// Circle method keeps each pairing unique across rounds.
	rotation := append([]string(nil), teamIDs...)
	for week := 1; week <= weeks; week++ {
		ds.Gameweeks = append(ds.Gameweeks, season.Gameweek{
			SeasonID:         testSeasonID,
			Number:           week,
			Deadline:         weekDeadline(week),
			EliminationState: season.EliminationNotProcessed,
		})
		for i := 0; i < teamCount/2; i++ {
			home, away := rotation[i], rotation[teamCount-1-i]
			ds.Fixtures = append(ds.Fixtures, fixture.Fixture{
				ID:             fmt.Sprintf("gw%d-%s-%s", week, home, away),
				SeasonID:       testSeasonID,
				GameweekNumber: week,
				HomeTeamID:     home,
				AwayTeamID:     away,
				KickoffAt:      weekDeadline(week).Add(2 * time.Hour),
				Status:         fixture.StatusScheduled,
			})
		}
		last := rotation[len(rotation)-1]
		copy(rotation[2:], rotation[1:len(rotation)-1])
		rotation[1] = last
	}

	for _, userID := range users {
		ds.Participations = append(ds.Participations, participation.SeasonParticipation{
			SeasonID:    testSeasonID,
			UserID:      userID,
			DisplayName: userID,
			IsApproved:  true,
		})
	}
	return ds
}

func fixtureID(ds memory.Dataset, week int, teamID string) string {
	for _, f := range ds.Fixtures {
		if f.GameweekNumber == week && f.Involves(teamID) {
			return f.ID
		}
	}
	return ""
}

func opponentIn(ds memory.Dataset, week int, teamID string) string {
	for _, f := range ds.Fixtures {
		if f.GameweekNumber == week {
			if opp, ok := f.OpponentOf(teamID); ok {
				return opp
			}
		}
	}
	return ""
}

func intPtr(v int) *int { return &v }
