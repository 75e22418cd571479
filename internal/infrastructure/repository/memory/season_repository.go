package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/season"
)

type SeasonRepository struct {
	mu        sync.RWMutex
	seasons   map[string]season.Season
	gameweeks map[string]season.Gameweek
	rules     map[string]season.PickRule
}

func NewSeasonRepository(seasons []season.Season, gameweeks []season.Gameweek, rules []season.PickRule) *SeasonRepository {
	r := &SeasonRepository{
		seasons:   make(map[string]season.Season, len(seasons)),
		gameweeks: make(map[string]season.Gameweek, len(gameweeks)),
		rules:     make(map[string]season.PickRule, len(rules)),
	}
	for _, item := range seasons {
		r.seasons[item.ID] = item
	}
	for _, item := range gameweeks {
		if item.EliminationState == "" {
			item.EliminationState = season.EliminationNotProcessed
		}
		r.gameweeks[gameweekKey(item.SeasonID, item.Number)] = cloneGameweek(item)
	}
	for _, item := range rules {
		r.rules[ruleKey(item.SeasonID, item.Half)] = item
	}
	return r
}

func (r *SeasonRepository) GetSeason(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seasons[seasonID]
	return item, ok, nil
}

func (r *SeasonRepository) ListActiveSeasons(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.seasons))
	for _, item := range r.seasons {
		if item.IsActive && !item.IsArchived {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SeasonRepository) GetGameweek(_ context.Context, seasonID string, week int) (season.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.gameweeks[gameweekKey(seasonID, week)]
	if !ok {
		return season.Gameweek{}, false, nil
	}
	return cloneGameweek(item), true, nil
}

func (r *SeasonRepository) ListGameweeks(_ context.Context, seasonID string) ([]season.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Gameweek, 0)
	for _, item := range r.gameweeks {
		if item.SeasonID == seasonID {
			out = append(out, cloneGameweek(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *SeasonRepository) GetPickRule(_ context.Context, seasonID string, half int) (season.PickRule, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rules[ruleKey(seasonID, half)]
	return item, ok, nil
}

func (r *SeasonRepository) UpsertPickRule(_ context.Context, rule season.PickRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[ruleKey(rule.SeasonID, rule.Half)] = rule
	return nil
}

func (r *SeasonRepository) UpdateEliminationCounts(_ context.Context, seasonID string, counts map[int]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for week := range counts {
		if _, ok := r.gameweeks[gameweekKey(seasonID, week)]; !ok {
			return fmt.Errorf("gameweek not found: season=%s week=%d", seasonID, week)
		}
	}
	for week, count := range counts {
		key := gameweekKey(seasonID, week)
		item := r.gameweeks[key]
		item.EliminationCount = count
		r.gameweeks[key] = item
	}
	return nil
}

func (r *SeasonRepository) ClaimEliminationProcessing(_ context.Context, seasonID string, week int, now time.Time, lease time.Duration) (season.Gameweek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := gameweekKey(seasonID, week)
	item, ok := r.gameweeks[key]
	if !ok {
		return season.Gameweek{}, fmt.Errorf("gameweek not found: season=%s week=%d", seasonID, week)
	}
	if !item.Claimable(now, lease) {
		return cloneGameweek(item), season.ErrClaimConflict
	}
	claimedAt := now
	item.EliminationState = season.EliminationProcessing
	item.EliminationClaimedAt = &claimedAt
	r.gameweeks[key] = item
	return cloneGameweek(item), nil
}

func (r *SeasonRepository) CompleteEliminationProcessing(_ context.Context, seasonID string, week int, processedAt time.Time, processedBy *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := gameweekKey(seasonID, week)
	item, ok := r.gameweeks[key]
	if !ok || item.EliminationState != season.EliminationProcessing {
		return season.ErrClaimConflict
	}
	at := processedAt
	item.EliminationState = season.EliminationProcessed
	item.EliminationClaimedAt = nil
	item.EliminationsProcessedAt = &at
	item.EliminationsProcessedBy = cloneStringPtr(processedBy)
	r.gameweeks[key] = item
	return nil
}

func (r *SeasonRepository) ReleaseEliminationProcessing(_ context.Context, seasonID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := gameweekKey(seasonID, week)
	item, ok := r.gameweeks[key]
	if !ok || item.EliminationState != season.EliminationProcessing {
		return season.ErrClaimConflict
	}
	item.EliminationState = season.EliminationNotProcessed
	item.EliminationClaimedAt = nil
	r.gameweeks[key] = item
	return nil
}

func gameweekKey(seasonID string, week int) string {
	return fmt.Sprintf("%s::%d", seasonID, week)
}

func ruleKey(seasonID string, half int) string {
	return fmt.Sprintf("%s::h%d", seasonID, half)
}

func cloneGameweek(g season.Gameweek) season.Gameweek {
	copied := g
	copied.EliminationClaimedAt = cloneTimePtr(g.EliminationClaimedAt)
	copied.EliminationsProcessedAt = cloneTimePtr(g.EliminationsProcessedAt)
	copied.EliminationsProcessedBy = cloneStringPtr(g.EliminationsProcessedBy)
	return copied
}

func cloneTimePtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
