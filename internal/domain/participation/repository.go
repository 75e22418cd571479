package participation

import "context"

type Repository interface {
	ListApproved(ctx context.Context, seasonID string) ([]SeasonParticipation, error)
}
