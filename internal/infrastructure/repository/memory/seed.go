package memory

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/team"
)

const SeasonID2024 = "2024/25"

// Dataset is the full content of an in-memory store.
type Dataset struct {
	Seasons        []season.Season
	Gameweeks      []season.Gameweek
	PickRules      []season.PickRule
	Teams          []team.Team
	Fixtures       []fixture.Fixture
	Participations []participation.SeasonParticipation
	Picks          []pick.Pick
	Eliminations   []elimination.UserElimination
}

// Store bundles the in-memory repositories built from one dataset.
type Store struct {
	Seasons        *SeasonRepository
	Teams          *TeamRepository
	Fixtures       *FixtureRepository
	Picks          *PickRepository
	Eliminations   *EliminationRepository
	Participations *ParticipationRepository
}

func NewStore(ds Dataset) *Store {
	return &Store{
		Seasons:        NewSeasonRepository(ds.Seasons, ds.Gameweeks, ds.PickRules),
		Teams:          NewTeamRepository(ds.Teams),
		Fixtures:       NewFixtureRepository(ds.Fixtures),
		Picks:          NewPickRepository(ds.Picks),
		Eliminations:   NewEliminationRepository(ds.Eliminations),
		Participations: NewParticipationRepository(ds.Participations),
	}
}

type seedFile struct {
	Seasons []seedSeason `yaml:"seasons"`
	Teams   []seedTeam   `yaml:"teams"`
}

type seedSeason struct {
	ID           string            `yaml:"id"`
	StartDate    time.Time         `yaml:"start_date"`
	EndDate      time.Time         `yaml:"end_date"`
	Active       bool              `yaml:"active"`
	Archived     bool              `yaml:"archived"`
	PickRules    []seedPickRule    `yaml:"pick_rules"`
	Gameweeks    []seedGameweek    `yaml:"gameweeks"`
	Participants []seedParticipant `yaml:"participants"`
}

type seedPickRule struct {
	Half                 int `yaml:"half"`
	MaxTeamPicks         int `yaml:"max_team_picks"`
	MaxOppositionTargets int `yaml:"max_opposition_targets"`
}

type seedGameweek struct {
	Number           int           `yaml:"number"`
	Deadline         time.Time     `yaml:"deadline"`
	Locked           bool          `yaml:"locked"`
	EliminationCount int           `yaml:"elimination_count"`
	Fixtures         []seedFixture `yaml:"fixtures"`
}

type seedFixture struct {
	ID        string    `yaml:"id"`
	Home      string    `yaml:"home"`
	Away      string    `yaml:"away"`
	KickoffAt time.Time `yaml:"kickoff_at"`
	Status    string    `yaml:"status"`
	HomeScore *int      `yaml:"home_score"`
	AwayScore *int      `yaml:"away_score"`
}

type seedParticipant struct {
	UserID      string `yaml:"user_id"`
	DisplayName string `yaml:"display_name"`
	Approved    bool   `yaml:"approved"`
}

type seedTeam struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	Active    *bool  `yaml:"active"`
}

// LoadDatasetFile reads a YAML seed file.
func LoadDatasetFile(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseDataset(raw)
}

func ParseDataset(raw []byte) (Dataset, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Dataset{}, fmt.Errorf("decode seed file: %w", err)
	}

	var ds Dataset
	for _, t := range file.Teams {
		active := true
		if t.Active != nil {
			active = *t.Active
		}
		item := team.Team{ID: t.ID, Name: t.Name, ShortName: t.ShortName, IsActive: active}
		if err := item.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("seed team %q: %w", t.ID, err)
		}
		ds.Teams = append(ds.Teams, item)
	}

	for _, s := range file.Seasons {
		if s.ID == "" {
			return Dataset{}, fmt.Errorf("seed season id is required")
		}
		ds.Seasons = append(ds.Seasons, season.Season{
			ID:         s.ID,
			StartDate:  s.StartDate,
			EndDate:    s.EndDate,
			IsActive:   s.Active,
			IsArchived: s.Archived,
		})
		for _, r := range s.PickRules {
			rule := season.PickRule{
				SeasonID:                        s.ID,
				Half:                            r.Half,
				MaxTimesTeamCanBePicked:         r.MaxTeamPicks,
				MaxTimesOppositionCanBeTargeted: r.MaxOppositionTargets,
			}
			if err := rule.Validate(); err != nil {
				return Dataset{}, fmt.Errorf("seed season %q: %w", s.ID, err)
			}
			ds.PickRules = append(ds.PickRules, rule)
		}
		for _, g := range s.Gameweeks {
			gw := season.Gameweek{
				SeasonID:         s.ID,
				Number:           g.Number,
				Deadline:         g.Deadline,
				IsLocked:         g.Locked,
				EliminationCount: g.EliminationCount,
				EliminationState: season.EliminationNotProcessed,
			}
			if err := gw.Validate(); err != nil {
				return Dataset{}, fmt.Errorf("seed season %q: %w", s.ID, err)
			}
			ds.Gameweeks = append(ds.Gameweeks, gw)
			for _, f := range g.Fixtures {
				status := fixture.NormalizeStatus(f.Status)
				if !fixture.ValidStatus(status) {
					return Dataset{}, fmt.Errorf("seed fixture %q: invalid status %q", f.ID, f.Status)
				}
				ds.Fixtures = append(ds.Fixtures, fixture.Fixture{
					ID:             f.ID,
					SeasonID:       s.ID,
					GameweekNumber: g.Number,
					HomeTeamID:     f.Home,
					AwayTeamID:     f.Away,
					HomeScore:      f.HomeScore,
					AwayScore:      f.AwayScore,
					KickoffAt:      f.KickoffAt,
					Status:         status,
				})
			}
		}
		for _, p := range s.Participants {
			ds.Participations = append(ds.Participations, participation.SeasonParticipation{
				SeasonID:    s.ID,
				UserID:      p.UserID,
				DisplayName: p.DisplayName,
				IsApproved:  p.Approved,
			})
		}
	}

	return ds, nil
}

// DefaultDataset is used when no seed file is configured.
func DefaultDataset() Dataset {
	start := time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)
	teams := []team.Team{
		{ID: "ars", Name: "Arsenal", ShortName: "ARS", IsActive: true},
		{ID: "avl", Name: "Aston Villa", ShortName: "AVL", IsActive: true},
		{ID: "che", Name: "Chelsea", ShortName: "CHE", IsActive: true},
		{ID: "liv", Name: "Liverpool", ShortName: "LIV", IsActive: true},
		{ID: "mci", Name: "Manchester City", ShortName: "MCI", IsActive: true},
		{ID: "mun", Name: "Manchester United", ShortName: "MUN", IsActive: true},
		{ID: "new", Name: "Newcastle United", ShortName: "NEW", IsActive: true},
		{ID: "tot", Name: "Tottenham Hotspur", ShortName: "TOT", IsActive: true},
	}

	ds := Dataset{
		Seasons: []season.Season{{
			ID:        SeasonID2024,
			StartDate: start,
			EndDate:   time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
		}},
		PickRules: []season.PickRule{
			season.DefaultPickRule(SeasonID2024, season.HalfFirst),
			season.DefaultPickRule(SeasonID2024, season.HalfSecond),
		},
		Teams: teams,
	}

	pairs := [][2]string{{"ars", "che"}, {"liv", "mci"}, {"mun", "tot"}, {"new", "avl"}}
	for week := 1; week <= 3; week++ {
		deadline := start.AddDate(0, 0, 7*(week-1)).Add(11 * time.Hour)
		ds.Gameweeks = append(ds.Gameweeks, season.Gameweek{
			SeasonID:         SeasonID2024,
			Number:           week,
			Deadline:         deadline,
			EliminationState: season.EliminationNotProcessed,
		})
		for i, pair := range pairs {
			home, away := pair[0], pair[1]
			if week%2 == 0 {
				home, away = away, home
			}
			ds.Fixtures = append(ds.Fixtures, fixture.Fixture{
				ID:             fmt.Sprintf("2024-25-gw%d-%d", week, i+1),
				SeasonID:       SeasonID2024,
				GameweekNumber: week,
				HomeTeamID:     home,
				AwayTeamID:     away,
				KickoffAt:      deadline.Add(90 * time.Minute),
				Status:         fixture.StatusScheduled,
			})
		}
		pairs = rotatePairs(pairs)
	}

	return ds
}

func rotatePairs(pairs [][2]string) [][2]string {
	out := make([][2]string, len(pairs))
	for i := range pairs {
		out[i] = [2]string{pairs[i][0], pairs[(i+1)%len(pairs)][1]}
	}
	return out
}
