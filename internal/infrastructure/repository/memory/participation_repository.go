package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
)

type ParticipationRepository struct {
	mu    sync.RWMutex
	items map[string]participation.SeasonParticipation
}

func NewParticipationRepository(items []participation.SeasonParticipation) *ParticipationRepository {
	r := &ParticipationRepository{items: make(map[string]participation.SeasonParticipation, len(items))}
	for _, item := range items {
		r.items[item.UserID+"::"+item.SeasonID] = item
	}
	return r
}

func (r *ParticipationRepository) ListApproved(_ context.Context, seasonID string) ([]participation.SeasonParticipation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participation.SeasonParticipation, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID && item.IsApproved {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *ParticipationRepository) Upsert(_ context.Context, item participation.SeasonParticipation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.UserID+"::"+item.SeasonID] = item
	return nil
}
