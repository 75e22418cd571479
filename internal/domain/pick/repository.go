package pick

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPickExists is returned when the (user, season, gameweek) slot is already taken.
	ErrPickExists = errors.New("pick already exists")
)

// CreateOptions guards an insert with a deadline evaluated by the store at write time.
type CreateOptions struct {
	NotAfter *time.Time
}

// Score is the persisted scoring tuple of a pick.
type Score struct {
	PickID       string
	Points       int
	GoalsFor     int
	GoalsAgainst int
}

// Repository describes pick persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, p Pick, opts CreateOptions) error
	GetByUserGameweek(ctx context.Context, userID, seasonID string, week int) (Pick, bool, error)
	ListByUserWeeks(ctx context.Context, userID, seasonID string, fromWeek, toWeek int) ([]Pick, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Pick, error)
	ListByGameweek(ctx context.Context, seasonID string, week int) ([]Pick, error)
	ListByFixture(ctx context.Context, fixtureID string) ([]Pick, error)
	UpdateScores(ctx context.Context, scores []Score, updatedAt time.Time) error
	Delete(ctx context.Context, pickID string) error
}
