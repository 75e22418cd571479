// Package cache decorates repositories with read-through caching for data that is
// read on every request but written rarely: teams, seasons, pick rules and fixtures.
package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/team"
	basecache "github.com/riskibarqy/last-man-standing/internal/platform/cache"
)

// lookup memoizes (value, found) pairs so misses are cached alongside hits.
type lookup[T any] struct {
	value T
	found bool
}

func loadLookup[T any](ctx context.Context, store *basecache.Store, key string, get func(context.Context) (T, bool, error)) (T, bool, error) {
	res, err := basecache.Load(ctx, store, key, func(ctx context.Context) (lookup[T], error) {
		v, found, err := get(ctx)
		if err != nil {
			return lookup[T]{}, err
		}
		return lookup[T]{value: v, found: found}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return res.value, res.found, nil
}

// loadList caches a slice and hands each caller its own copy.
func loadList[T any](ctx context.Context, store *basecache.Store, key string, list func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, store, key, func(ctx context.Context) ([]T, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return loadLookup(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

// ListByIDs keys on the sorted id set so request order does not fragment the cache.
func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	ids := slices.Clone(teamIDs)
	slices.Sort(ids)
	return loadList(ctx, r.cache, "team:ids:"+strings.Join(ids, ","), func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByIDs(ctx, teamIDs)
	})
}

// SeasonRepository caches seasons and pick rules. Gameweeks are read through
// since their elimination state changes under concurrent processing.
type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetSeason(ctx context.Context, seasonID string) (season.Season, bool, error) {
	return loadLookup(ctx, r.cache, "season:id:"+seasonID, func(ctx context.Context) (season.Season, bool, error) {
		return r.next.GetSeason(ctx, seasonID)
	})
}

func (r *SeasonRepository) ListActiveSeasons(ctx context.Context) ([]season.Season, error) {
	return loadList(ctx, r.cache, "season:active", r.next.ListActiveSeasons)
}

func (r *SeasonRepository) GetGameweek(ctx context.Context, seasonID string, week int) (season.Gameweek, bool, error) {
	return r.next.GetGameweek(ctx, seasonID, week)
}

func (r *SeasonRepository) ListGameweeks(ctx context.Context, seasonID string) ([]season.Gameweek, error) {
	return r.next.ListGameweeks(ctx, seasonID)
}

func (r *SeasonRepository) GetPickRule(ctx context.Context, seasonID string, half int) (season.PickRule, bool, error) {
	return loadLookup(ctx, r.cache, pickRuleKey(seasonID, half), func(ctx context.Context) (season.PickRule, bool, error) {
		return r.next.GetPickRule(ctx, seasonID, half)
	})
}

func (r *SeasonRepository) UpsertPickRule(ctx context.Context, rule season.PickRule) error {
	if err := r.next.UpsertPickRule(ctx, rule); err != nil {
		return err
	}
	r.cache.Delete(ctx, pickRuleKey(rule.SeasonID, rule.Half))
	return nil
}

func (r *SeasonRepository) UpdateEliminationCounts(ctx context.Context, seasonID string, counts map[int]int) error {
	return r.next.UpdateEliminationCounts(ctx, seasonID, counts)
}

func (r *SeasonRepository) ClaimEliminationProcessing(ctx context.Context, seasonID string, week int, now time.Time, lease time.Duration) (season.Gameweek, error) {
	return r.next.ClaimEliminationProcessing(ctx, seasonID, week, now, lease)
}

func (r *SeasonRepository) CompleteEliminationProcessing(ctx context.Context, seasonID string, week int, processedAt time.Time, processedBy *string) error {
	return r.next.CompleteEliminationProcessing(ctx, seasonID, week, processedAt, processedBy)
}

func (r *SeasonRepository) ReleaseEliminationProcessing(ctx context.Context, seasonID string, week int) error {
	return r.next.ReleaseEliminationProcessing(ctx, seasonID, week)
}

func pickRuleKey(seasonID string, half int) string {
	return "season:pick_rule:" + seasonID + ":" + strconv.Itoa(half)
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	return loadLookup(ctx, r.cache, fixtureKey(fixtureID), func(ctx context.Context) (fixture.Fixture, bool, error) {
		return r.next.GetByID(ctx, fixtureID)
	})
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, seasonID string, week int) ([]fixture.Fixture, error) {
	key := fixtureSeasonPrefix(seasonID) + "gw:" + strconv.Itoa(week)
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]fixture.Fixture, error) {
		return r.next.ListByGameweek(ctx, seasonID, week)
	})
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID string) ([]fixture.Fixture, error) {
	return loadList(ctx, r.cache, fixtureSeasonPrefix(seasonID)+"all", func(ctx context.Context) ([]fixture.Fixture, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
}

// UpdateResult writes through and drops every cached view of the fixture's season.
func (r *FixtureRepository) UpdateResult(ctx context.Context, fixtureID string, result fixture.Result) (fixture.Fixture, error) {
	updated, err := r.next.UpdateResult(ctx, fixtureID, result)
	if err != nil {
		return fixture.Fixture{}, err
	}
	r.cache.Delete(ctx, fixtureKey(fixtureID))
	r.cache.DeletePrefix(ctx, fixtureSeasonPrefix(updated.SeasonID))
	return updated, nil
}

func fixtureKey(fixtureID string) string {
	return "fixture:id:" + fixtureID
}

func fixtureSeasonPrefix(seasonID string) string {
	return "fixture:season:" + seasonID + ":"
}
