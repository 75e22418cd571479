package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
)

type PickRepository struct {
	mu     sync.RWMutex
	now    func() time.Time
	byID   map[string]pick.Pick
	bySlot map[string]string
}

func NewPickRepository(items []pick.Pick) *PickRepository {
	r := &PickRepository{
		now:    time.Now,
		byID:   make(map[string]pick.Pick, len(items)),
		bySlot: make(map[string]string, len(items)),
	}
	for _, item := range items {
		r.byID[item.ID] = item
		r.bySlot[pick.Key(item.UserID, item.SeasonID, item.GameweekNumber)] = item.ID
	}
	return r
}

// WithClock overrides the clock used for write-time deadline guards.
func (r *PickRepository) WithClock(now func() time.Time) *PickRepository {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *PickRepository) Create(_ context.Context, p pick.Pick, opts pick.CreateOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if opts.NotAfter != nil && r.now().After(*opts.NotAfter) {
		return fmt.Errorf("%w: deadline=%s", pick.ErrDeadlinePassed, opts.NotAfter.UTC().Format(time.RFC3339))
	}
	slot := pick.Key(p.UserID, p.SeasonID, p.GameweekNumber)
	if _, exists := r.bySlot[slot]; exists {
		return fmt.Errorf("%w: user=%s season=%s week=%d", pick.ErrPickExists, p.UserID, p.SeasonID, p.GameweekNumber)
	}
	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("%w: id=%s", pick.ErrPickExists, p.ID)
	}

	r.byID[p.ID] = p
	r.bySlot[slot] = p.ID
	return nil
}

func (r *PickRepository) GetByUserGameweek(_ context.Context, userID, seasonID string, week int) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlot[pick.Key(userID, seasonID, week)]
	if !ok {
		return pick.Pick{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *PickRepository) ListByUserWeeks(_ context.Context, userID, seasonID string, fromWeek, toWeek int) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool {
		return p.UserID == userID && p.SeasonID == seasonID && p.GameweekNumber >= fromWeek && p.GameweekNumber <= toWeek
	}), nil
}

func (r *PickRepository) ListBySeason(_ context.Context, seasonID string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.SeasonID == seasonID }), nil
}

func (r *PickRepository) ListByGameweek(_ context.Context, seasonID string, week int) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.SeasonID == seasonID && p.GameweekNumber == week }), nil
}

func (r *PickRepository) ListByFixture(_ context.Context, fixtureID string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.FixtureID == fixtureID }), nil
}

func (r *PickRepository) UpdateScores(_ context.Context, scores []pick.Score, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, score := range scores {
		if _, ok := r.byID[score.PickID]; !ok {
			return fmt.Errorf("pick not found: %s", score.PickID)
		}
	}
	for _, score := range scores {
		item := r.byID[score.PickID]
		item.Points = score.Points
		item.GoalsFor = score.GoalsFor
		item.GoalsAgainst = score.GoalsAgainst
		item.UpdatedAt = updatedAt
		r.byID[score.PickID] = item
	}
	return nil
}

func (r *PickRepository) Delete(_ context.Context, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[pickID]
	if !ok {
		return nil
	}
	delete(r.byID, pickID)
	delete(r.bySlot, pick.Key(item.UserID, item.SeasonID, item.GameweekNumber))
	return nil
}

func (r *PickRepository) list(match func(pick.Pick) bool) []pick.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.byID {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameweekNumber != out[j].GameweekNumber {
			return out[i].GameweekNumber < out[j].GameweekNumber
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
