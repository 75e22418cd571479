package pick

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/season"
)

var (
	ErrTeamReuseExceeded       = errors.New("team reuse limit exceeded")
	ErrOppositionReuseExceeded = errors.New("opposition reuse limit exceeded")
	ErrDeadlinePassed          = errors.New("gameweek deadline passed")
	ErrTeamInactive            = errors.New("team is not active")
	ErrTeamNotPlaying          = errors.New("team has no fixture in gameweek")
)

// Candidate is everything Validate needs to judge one proposed pick.
type Candidate struct {
	TeamID         string
	OpponentTeamID string
	TeamActive     bool
	HasFixture     bool
	Deadline       time.Time
	Now            time.Time
	// BypassDeadline is set by admin override and auto-assignment.
	BypassDeadline bool
	Rule           season.PickRule
	PriorInHalf    []Prior
}

// Validate checks team reuse, fixture presence, opposition reuse, deadline and team activity in that order.
func Validate(c Candidate) error {
	rule := c.Rule
	if rule.MaxTimesTeamCanBePicked < 1 {
		rule.MaxTimesTeamCanBePicked = 1
	}
	if rule.MaxTimesOppositionCanBeTargeted < 1 {
		rule.MaxTimesOppositionCanBeTargeted = 1
	}

	var teamCount, opponentCount int
	for _, prior := range c.PriorInHalf {
		if prior.TeamID == c.TeamID {
			teamCount++
		}
		if c.OpponentTeamID != "" && prior.OpponentTeamID == c.OpponentTeamID {
			opponentCount++
		}
	}

	if teamCount >= rule.MaxTimesTeamCanBePicked {
		return fmt.Errorf("%w: team=%s picked=%d max=%d", ErrTeamReuseExceeded, c.TeamID, teamCount, rule.MaxTimesTeamCanBePicked)
	}
	if !c.HasFixture {
		return fmt.Errorf("%w: team=%s", ErrTeamNotPlaying, c.TeamID)
	}
	if opponentCount >= rule.MaxTimesOppositionCanBeTargeted {
		return fmt.Errorf("%w: opponent=%s targeted=%d max=%d", ErrOppositionReuseExceeded, c.OpponentTeamID, opponentCount, rule.MaxTimesOppositionCanBeTargeted)
	}
	if !c.BypassDeadline && c.Now.After(c.Deadline) {
		return fmt.Errorf("%w: deadline=%s", ErrDeadlinePassed, c.Deadline.UTC().Format(time.RFC3339))
	}
	if !c.TeamActive {
		return fmt.Errorf("%w: team=%s", ErrTeamInactive, c.TeamID)
	}

	return nil
}

// IsViolation reports whether err is a rule outcome rather than an infrastructure failure.
func IsViolation(err error) bool {
	return errors.Is(err, ErrTeamReuseExceeded) ||
		errors.Is(err, ErrOppositionReuseExceeded) ||
		errors.Is(err, ErrDeadlinePassed) ||
		errors.Is(err, ErrTeamInactive) ||
		errors.Is(err, ErrTeamNotPlaying)
}
