package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
)

func TestParseDataset(t *testing.T) {
	t.Parallel()

	raw := []byte(`
teams:
  - {id: ars, name: Arsenal, short_name: ARS}
  - {id: shu, name: Sheffield United, short_name: SHU, active: false}
seasons:
  - id: "2024/25"
    active: true
    participants:
      - {user_id: u1, display_name: Ann, approved: true}
    gameweeks:
      - number: 1
        deadline: 2024-08-16T18:30:00Z
        elimination_count: 2
        fixtures:
          - {id: f1, home: ars, away: shu, status: finished, home_score: 2, away_score: 0}
`)

	ds, err := ParseDataset(raw)
	if err != nil {
		t.Fatalf("parse dataset: %v", err)
	}
	if len(ds.Teams) != 2 || !ds.Teams[0].IsActive || ds.Teams[1].IsActive {
		t.Fatalf("unexpected teams: %+v", ds.Teams)
	}
	if len(ds.Gameweeks) != 1 || ds.Gameweeks[0].EliminationCount != 2 {
		t.Fatalf("unexpected gameweeks: %+v", ds.Gameweeks)
	}
	if len(ds.Fixtures) != 1 || ds.Fixtures[0].Status != fixture.StatusFinished || *ds.Fixtures[0].HomeScore != 2 {
		t.Fatalf("unexpected fixtures: %+v", ds.Fixtures)
	}

	store := NewStore(ds)
	approved, err := store.Participations.ListApproved(context.Background(), "2024/25")
	if err != nil || len(approved) != 1 {
		t.Fatalf("unexpected participants: %+v err=%v", approved, err)
	}
}

func TestParseDataset_RejectsInvalidWeek(t *testing.T) {
	t.Parallel()

	raw := []byte(`
seasons:
  - id: s
    gameweeks:
      - number: 40
`)
	if _, err := ParseDataset(raw); err == nil {
		t.Fatalf("expected error for week 40")
	}
}

func TestLoadDatasetFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("teams:\n  - {id: ars, name: Arsenal}\n"), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	ds, err := LoadDatasetFile(path)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(ds.Teams) != 1 {
		t.Fatalf("unexpected teams: %+v", ds.Teams)
	}

	if _, err := LoadDatasetFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultDataset_FixturesCoverAllTeams(t *testing.T) {
	t.Parallel()

	ds := DefaultDataset()
	for week := 1; week <= 3; week++ {
		seen := map[string]int{}
		for _, f := range ds.Fixtures {
			if f.GameweekNumber != week {
				continue
			}
			seen[f.HomeTeamID]++
			seen[f.AwayTeamID]++
		}
		if len(seen) != len(ds.Teams) {
			t.Fatalf("week %d: expected %d teams playing, got %d", week, len(ds.Teams), len(seen))
		}
		for teamID, n := range seen {
			if n != 1 {
				t.Fatalf("week %d: team %s plays %d times", week, teamID, n)
			}
		}
	}
}
