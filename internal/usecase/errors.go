package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Specific errors match their class with errors.Is.
var (
	ErrSeasonNotFound   = fmt.Errorf("%w: season", ErrNotFound)
	ErrGameweekNotFound = fmt.Errorf("%w: gameweek", ErrNotFound)
	ErrFixtureNotFound  = fmt.Errorf("%w: fixture", ErrNotFound)
	ErrPickNotFound     = fmt.Errorf("%w: pick", ErrNotFound)
	ErrTeamNotFound     = fmt.Errorf("%w: team", ErrNotFound)

	ErrDuplicatePick         = fmt.Errorf("%w: pick already submitted for gameweek", ErrConflict)
	ErrPickLocked            = fmt.Errorf("%w: pick can no longer be changed", ErrConflict)
	ErrEliminationInProgress = fmt.Errorf("%w: gameweek elimination already in progress", ErrConflict)
	ErrEliminationProcessed  = fmt.Errorf("%w: gameweek eliminations already processed", ErrConflict)
	ErrDeadlineNotPassed     = fmt.Errorf("%w: gameweek deadline has not passed", ErrConflict)
)
