package pick

import (
	"fmt"
	"strings"
	"time"
)

// Pick is a user's team selection for one gameweek of a season.
type Pick struct {
	ID             string
	UserID         string
	SeasonID       string
	GameweekNumber int
	TeamID         string
	FixtureID      string
	Points         int
	GoalsFor       int
	GoalsAgainst   int
	IsAutoAssigned bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Pick) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("pick user id is required")
	}
	if strings.TrimSpace(p.SeasonID) == "" {
		return fmt.Errorf("pick season id is required")
	}
	if p.GameweekNumber < 1 {
		return fmt.Errorf("pick gameweek number must be >= 1")
	}
	if strings.TrimSpace(p.TeamID) == "" {
		return fmt.Errorf("pick team id is required")
	}
	if strings.TrimSpace(p.FixtureID) == "" {
		return fmt.Errorf("pick fixture id is required")
	}
	return nil
}

// Key identifies the single pick slot of a user in a gameweek.
func Key(userID, seasonID string, week int) string {
	return fmt.Sprintf("%s::%s::%d", userID, seasonID, week)
}

// Prior is a pick already made in the same half, resolved against its fixture.
type Prior struct {
	GameweekNumber int
	TeamID         string
	OpponentTeamID string
}
