package fixture

import "context"

// Repository exposes fixture persistence.
type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByGameweek(ctx context.Context, seasonID string, week int) ([]Fixture, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Fixture, error)
	UpdateResult(ctx context.Context, fixtureID string, result Result) (Fixture, error)
}
