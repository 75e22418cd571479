package season

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinWeek      = 1
	MaxWeek      = 38
	FirstHalfEnd = 19

	HalfFirst  = 1
	HalfSecond = 2

	MaxEliminationCount = 100

	// DefaultEliminationClaimLease bounds how long a PROCESSING claim blocks other runs.
	DefaultEliminationClaimLease = 10 * time.Minute
)

const (
	EliminationNotProcessed = "NOT_PROCESSED"
	EliminationProcessing   = "PROCESSING"
	EliminationProcessed    = "PROCESSED"
)

// Season is identified by its unique name, e.g. "2024/25".
type Season struct {
	ID         string
	StartDate  time.Time
	EndDate    time.Time
	IsActive   bool
	IsArchived bool
}

// Gameweek is one round of fixtures with a single pick deadline.
type Gameweek struct {
	SeasonID         string
	Number           int
	Deadline         time.Time
	IsLocked         bool
	EliminationCount int

	EliminationState        string
	EliminationClaimedAt    *time.Time
	EliminationsProcessedAt *time.Time
	EliminationsProcessedBy *string
}

// Half reports which half of the season the gameweek belongs to.
func (g Gameweek) Half() int {
	return HalfOf(g.Number)
}

func (g Gameweek) DeadlinePassed(now time.Time) bool {
	return now.After(g.Deadline)
}

func (g Gameweek) EliminationsProcessed() bool {
	return g.EliminationState == EliminationProcessed
}

// Claimable reports whether a claim at now may take the gameweek: it is
// unprocessed, or its PROCESSING claim is older than lease.
func (g Gameweek) Claimable(now time.Time, lease time.Duration) bool {
	switch g.EliminationState {
	case EliminationNotProcessed:
		return true
	case EliminationProcessing:
		return lease > 0 && g.ClaimStale(now, lease)
	default:
		return false
	}
}

// ClaimStale reports whether a PROCESSING claim started more than lease before now.
// A claim without a timestamp predates leases and counts as stale.
func (g Gameweek) ClaimStale(now time.Time, lease time.Duration) bool {
	if g.EliminationState != EliminationProcessing {
		return false
	}
	if g.EliminationClaimedAt == nil {
		return true
	}
	return g.EliminationClaimedAt.Before(now.Add(-lease))
}

func (g Gameweek) Validate() error {
	if strings.TrimSpace(g.SeasonID) == "" {
		return fmt.Errorf("gameweek season id is required")
	}
	if !ValidWeek(g.Number) {
		return fmt.Errorf("gameweek number must be between %d and %d", MinWeek, MaxWeek)
	}
	if g.EliminationCount < 0 || g.EliminationCount > MaxEliminationCount {
		return fmt.Errorf("elimination count must be between 0 and %d", MaxEliminationCount)
	}
	return nil
}

func HalfOf(week int) int {
	if week <= FirstHalfEnd {
		return HalfFirst
	}
	return HalfSecond
}

// WeekRange returns the inclusive gameweek bounds of a half.
func WeekRange(half int) (int, int) {
	if half == HalfSecond {
		return FirstHalfEnd + 1, MaxWeek
	}
	return MinWeek, FirstHalfEnd
}

func ValidWeek(week int) bool {
	return week >= MinWeek && week <= MaxWeek
}

func ValidHalf(half int) bool {
	return half == HalfFirst || half == HalfSecond
}

// PickRule caps team reuse inside one half of a season.
type PickRule struct {
	SeasonID                        string
	Half                            int
	MaxTimesTeamCanBePicked         int
	MaxTimesOppositionCanBeTargeted int
}

func DefaultPickRule(seasonID string, half int) PickRule {
	return PickRule{
		SeasonID:                        seasonID,
		Half:                            half,
		MaxTimesTeamCanBePicked:         1,
		MaxTimesOppositionCanBeTargeted: 1,
	}
}

func (r PickRule) Validate() error {
	if strings.TrimSpace(r.SeasonID) == "" {
		return fmt.Errorf("pick rule season id is required")
	}
	if !ValidHalf(r.Half) {
		return fmt.Errorf("pick rule half must be %d or %d", HalfFirst, HalfSecond)
	}
	if r.MaxTimesTeamCanBePicked < 1 {
		return fmt.Errorf("max times team can be picked must be >= 1")
	}
	if r.MaxTimesOppositionCanBeTargeted < 1 {
		return fmt.Errorf("max times opposition can be targeted must be >= 1")
	}
	return nil
}
