package standing

// Entry is one user's row in a season table. It is computed on demand and never stored.
type Entry struct {
	UserID       string
	DisplayName  string
	Position     int
	TotalPoints  int
	PicksMade    int
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int

	IsEliminated         bool
	EliminatedInGameweek *int
	EliminationPosition  *int
}

func (e Entry) GoalDifference() int {
	return e.GoalsFor - e.GoalsAgainst
}
