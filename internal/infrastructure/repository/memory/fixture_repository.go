package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[string]fixture.Fixture
}

func NewFixtureRepository(items []fixture.Fixture) *FixtureRepository {
	fixtures := make(map[string]fixture.Fixture, len(items))
	for _, item := range items {
		item.Status = fixture.NormalizeStatus(item.Status)
		fixtures[item.ID] = cloneFixture(item)
	}
	return &FixtureRepository{fixtures: fixtures}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.fixtures[fixtureID]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return cloneFixture(item), true, nil
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, seasonID string, week int) ([]fixture.Fixture, error) {
	return r.list(func(f fixture.Fixture) bool {
		return f.SeasonID == seasonID && f.GameweekNumber == week
	}), nil
}

func (r *FixtureRepository) ListBySeason(_ context.Context, seasonID string) ([]fixture.Fixture, error) {
	return r.list(func(f fixture.Fixture) bool {
		return f.SeasonID == seasonID
	}), nil
}

func (r *FixtureRepository) UpdateResult(_ context.Context, fixtureID string, result fixture.Result) (fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.fixtures[fixtureID]
	if !ok {
		return fixture.Fixture{}, fmt.Errorf("fixture not found: %s", fixtureID)
	}
	item.Status = fixture.NormalizeStatus(result.Status)
	item.HomeScore = cloneIntPtr(result.HomeScore)
	item.AwayScore = cloneIntPtr(result.AwayScore)
	r.fixtures[fixtureID] = item

	return cloneFixture(item), nil
}

func (r *FixtureRepository) list(match func(fixture.Fixture) bool) []fixture.Fixture {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.fixtures {
		if match(item) {
			out = append(out, cloneFixture(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameweekNumber != out[j].GameweekNumber {
			return out[i].GameweekNumber < out[j].GameweekNumber
		}
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func cloneFixture(f fixture.Fixture) fixture.Fixture {
	copied := f
	copied.HomeScore = cloneIntPtr(f.HomeScore)
	copied.AwayScore = cloneIntPtr(f.AwayScore)
	return copied
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
