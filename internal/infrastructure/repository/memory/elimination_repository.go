package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
)

type EliminationRepository struct {
	mu    sync.RWMutex
	items map[string]elimination.UserElimination
}

func NewEliminationRepository(items []elimination.UserElimination) *EliminationRepository {
	r := &EliminationRepository{items: make(map[string]elimination.UserElimination, len(items))}
	for _, item := range items {
		r.items[eliminationKey(item.UserID, item.SeasonID)] = item
	}
	return r
}

func (r *EliminationRepository) ListBySeason(_ context.Context, seasonID string) ([]elimination.UserElimination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]elimination.UserElimination, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, cloneElimination(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameweekNumber != out[j].GameweekNumber {
			return out[i].GameweekNumber < out[j].GameweekNumber
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *EliminationRepository) Create(_ context.Context, item elimination.UserElimination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := eliminationKey(item.UserID, item.SeasonID)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: user=%s season=%s", elimination.ErrAlreadyEliminated, item.UserID, item.SeasonID)
	}
	r.items[key] = cloneElimination(item)
	return nil
}

func eliminationKey(userID, seasonID string) string {
	return userID + "::" + seasonID
}

func cloneElimination(item elimination.UserElimination) elimination.UserElimination {
	copied := item
	copied.EliminatedBy = cloneStringPtr(item.EliminatedBy)
	return copied
}
