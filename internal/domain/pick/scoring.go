package pick

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

var ErrTeamNotInFixture = errors.New("team is not part of fixture")

// Outcome is the scoring result of a pick. Scored is false when the fixture has
// no countable result, in which case stored values must be left untouched.
type Outcome struct {
	Points       int
	GoalsFor     int
	GoalsAgainst int
	Status       string
	Scored       bool
}

func (o Outcome) Won() bool   { return o.Scored && o.GoalsFor > o.GoalsAgainst }
func (o Outcome) Drawn() bool { return o.Scored && o.GoalsFor == o.GoalsAgainst }
func (o Outcome) Lost() bool  { return o.Scored && o.GoalsFor < o.GoalsAgainst }

// Score maps a picked team and its fixture to points and goals.
func Score(teamID string, f fixture.Fixture) (Outcome, error) {
	status := fixture.NormalizeStatus(f.Status)
	if !f.Involves(teamID) {
		return Outcome{Status: status}, fmt.Errorf("%w: team=%s fixture=%s", ErrTeamNotInFixture, teamID, f.ID)
	}
	if !fixture.HasResult(status) {
		return Outcome{Status: status}, nil
	}

	home, away := 0, 0
	if f.HomeScore != nil {
		home = *f.HomeScore
	}
	if f.AwayScore != nil {
		away = *f.AwayScore
	}

	out := Outcome{Status: status, Scored: true}
	if teamID == f.HomeTeamID {
		out.GoalsFor, out.GoalsAgainst = home, away
	} else {
		out.GoalsFor, out.GoalsAgainst = away, home
	}

	switch {
	case out.GoalsFor > out.GoalsAgainst:
		out.Points = PointsWin
	case out.GoalsFor == out.GoalsAgainst:
		out.Points = PointsDraw
	default:
		out.Points = PointsLoss
	}
	return out, nil
}

// Apply copies a scored outcome onto the pick and reports whether anything changed.
func (p *Pick) Apply(out Outcome) bool {
	if !out.Scored {
		return false
	}
	if p.Points == out.Points && p.GoalsFor == out.GoalsFor && p.GoalsAgainst == out.GoalsAgainst {
		return false
	}
	p.Points = out.Points
	p.GoalsFor = out.GoalsFor
	p.GoalsAgainst = out.GoalsAgainst
	return true
}
