package standing

import (
	"sort"
	"strings"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
)

// Input is the season data a table is folded from.
type Input struct {
	Participants []participation.SeasonParticipation
	Picks        []pick.Pick
	Fixtures     map[string]fixture.Fixture
	Eliminations []elimination.UserElimination
}

// Build folds picks into one entry per participant and ranks them.
// Points count over every pick; W/D/L and goals only over fixtures with a result.
func Build(in Input) []Entry {
	byUser := make(map[string]*Entry, len(in.Participants))
	out := make([]*Entry, 0, len(in.Participants))
	for _, p := range in.Participants {
		if _, exists := byUser[p.UserID]; exists {
			continue
		}
		entry := &Entry{UserID: p.UserID, DisplayName: p.DisplayName}
		byUser[p.UserID] = entry
		out = append(out, entry)
	}

	for _, item := range in.Picks {
		entry, ok := byUser[item.UserID]
		if !ok {
			continue
		}
		entry.PicksMade++
		entry.TotalPoints += item.Points

		f, ok := in.Fixtures[item.FixtureID]
		if !ok || !fixture.HasResult(f.Status) {
			continue
		}
		entry.Played++
		entry.GoalsFor += item.GoalsFor
		entry.GoalsAgainst += item.GoalsAgainst
		switch {
		case item.GoalsFor > item.GoalsAgainst:
			entry.Wins++
		case item.GoalsFor == item.GoalsAgainst:
			entry.Draws++
		default:
			entry.Losses++
		}
	}

	for _, e := range in.Eliminations {
		entry, ok := byUser[e.UserID]
		if !ok {
			continue
		}
		week, position := e.GameweekNumber, e.Position
		entry.IsEliminated = true
		entry.EliminatedInGameweek = &week
		entry.EliminationPosition = &position
	}

	entries := make([]Entry, 0, len(out))
	for _, entry := range out {
		entries = append(entries, *entry)
	}
	Rank(entries)
	return entries
}

// Rank sorts entries by total points, goal difference, goals for, display name
// and user id, then assigns ordinal positions starting at 1.
func Rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
}

// Less reports whether a ranks above b.
func Less(a, b Entry) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.GoalDifference() != b.GoalDifference() {
		return a.GoalDifference() > b.GoalDifference()
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	nameA, nameB := strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName)
	if nameA != nameB {
		return nameA < nameB
	}
	return a.UserID < b.UserID
}

// Active drops eliminated users and re-ranks the rest.
func Active(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsEliminated {
			continue
		}
		out = append(out, entry)
	}
	Rank(out)
	return out
}
