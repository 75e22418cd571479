package elimination

import (
	"context"
	"errors"
)

// ErrAlreadyEliminated is returned when a user already has an elimination for the season.
var ErrAlreadyEliminated = errors.New("user already eliminated in season")

// Repository describes elimination persistence.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]UserElimination, error)
	Create(ctx context.Context, item UserElimination) error
}
