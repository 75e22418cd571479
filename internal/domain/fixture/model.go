package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// Fixture represents one match inside a gameweek.
type Fixture struct {
	ID             string
	SeasonID       string
	GameweekNumber int
	HomeTeamID     string
	AwayTeamID     string
	HomeScore      *int
	AwayScore      *int
	KickoffAt      time.Time
	Status         string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func ValidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusScheduled, StatusInPlay, StatusPaused, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

// HasResult reports whether the status carries a score that counts for picks.
func HasResult(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, StatusInPlay, StatusPaused:
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed:
		return true
	default:
		return false
	}
}

func (f Fixture) Involves(teamID string) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// OpponentOf returns the other side of the fixture for teamID.
func (f Fixture) OpponentOf(teamID string) (string, bool) {
	switch teamID {
	case f.HomeTeamID:
		return f.AwayTeamID, true
	case f.AwayTeamID:
		return f.HomeTeamID, true
	default:
		return "", false
	}
}

// Result is a status or score update pushed by the fixture data source.
type Result struct {
	Status    string
	HomeScore *int
	AwayScore *int
}
