package season

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrClaimConflict is returned when a gameweek is not in the state a claim expects.
	ErrClaimConflict = errors.New("gameweek elimination state conflict")
)

// Repository describes season, gameweek and pick rule persistence.
type Repository interface {
	GetSeason(ctx context.Context, seasonID string) (Season, bool, error)
	ListActiveSeasons(ctx context.Context) ([]Season, error)
	GetGameweek(ctx context.Context, seasonID string, week int) (Gameweek, bool, error)
	ListGameweeks(ctx context.Context, seasonID string) ([]Gameweek, error)

	GetPickRule(ctx context.Context, seasonID string, half int) (PickRule, bool, error)
	UpsertPickRule(ctx context.Context, rule PickRule) error

	// UpdateEliminationCounts applies all counts or none.
	UpdateEliminationCounts(ctx context.Context, seasonID string, counts map[int]int) error

	// ClaimEliminationProcessing moves a gameweek to PROCESSING and stamps the claim.
	// A PROCESSING gameweek whose claim is older than lease is taken over.
	// It returns the current gameweek and ErrClaimConflict when the gameweek is not claimable.
	// Stores with their own clock compare against it instead of now.
	ClaimEliminationProcessing(ctx context.Context, seasonID string, week int, now time.Time, lease time.Duration) (Gameweek, error)
	CompleteEliminationProcessing(ctx context.Context, seasonID string, week int, processedAt time.Time, processedBy *string) error
	ReleaseEliminationProcessing(ctx context.Context, seasonID string, week int) error
}
