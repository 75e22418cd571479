package elimination

import "time"

// UserElimination is the terminal removal of a user from a season.
type UserElimination struct {
	ID             string
	UserID         string
	SeasonID       string
	GameweekNumber int
	Position       int
	TotalPoints    int
	EliminatedBy   *string
	EliminatedAt   time.Time
}
