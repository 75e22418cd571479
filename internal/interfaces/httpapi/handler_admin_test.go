package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/last-man-standing/internal/platform/id"
	"github.com/riskibarqy/last-man-standing/internal/platform/keylock"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingEliminationRepository struct {
	*memory.EliminationRepository
	failFor string
}

func (r *failingEliminationRepository) Create(ctx context.Context, item elimination.UserElimination) error {
	if item.UserID == r.failFor {
		return errors.New("connection reset")
	}
	return r.EliminationRepository.Create(ctx, item)
}

func TestProcessEliminations_LogsPartialResultOnFailure(t *testing.T) {
	ds := testDataset(time.Now())
	ds.Gameweeks[0].EliminationCount = 2
	store := memory.NewStore(ds)

	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.FromZap(zap.New(core))
	ids := id.NewUUIDGenerator()
	locks := keylock.New()

	// Nobody has points, so bob and carol sit at the bottom by display name; bob is written first.
	eliminations := &failingEliminationRepository{EliminationRepository: store.Eliminations, failFor: "carol"}
	standings := usecase.NewStandingsService(store.Seasons, store.Fixtures, store.Picks, store.Participations, eliminations)
	handler := NewHandler(
		usecase.NewPickService(store.Seasons, store.Fixtures, store.Teams, store.Picks, ids, locks, logger),
		usecase.NewScoringService(store.Fixtures, store.Picks, logger),
		standings,
		usecase.NewEliminationService(store.Seasons, store.Participations, eliminations, standings, ids, logger),
		usecase.NewAutoPickService(store.Seasons, store.Fixtures, store.Teams, store.Picks, store.Participations, eliminations, ids, locks, nil, logger, 2),
		usecase.NewSeasonService(store.Seasons, logger),
		logger,
	)
	router := NewRouter(handler, logger, RouterConfig{CORSAllowedOrigins: []string{"*"}, InternalJobToken: testJobToken})

	rec := doRequest(t, router, http.MethodPost, internalSeasonPath("/gameweeks/1/eliminations"), "", asJob("ops"))
	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	failed := logs.FilterMessage("process eliminations failed").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.EqualValues(t, 1, fields["players_eliminated"])
	assert.Equal(t, []interface{}{"bob"}, fields["eliminated_user_ids"])
	assert.Contains(t, fields["error"], "connection reset")

	rows, err := store.Eliminations.ListBySeason(context.Background(), testSeasonID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bob", rows[0].UserID)
}
