package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/last-man-standing/internal/config"
	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/team"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/notify"
	cacherepo "github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/last-man-standing/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/last-man-standing/internal/platform/cache"
	"github.com/riskibarqy/last-man-standing/internal/platform/dbconn"
	idgen "github.com/riskibarqy/last-man-standing/internal/platform/id"
	"github.com/riskibarqy/last-man-standing/internal/platform/keylock"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	"github.com/riskibarqy/last-man-standing/internal/platform/resilience"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
)

type repositories struct {
	seasons        season.Repository
	teams          team.Repository
	fixtures       fixture.Repository
	picks          pick.Repository
	eliminations   elimination.Repository
	participations participation.Repository
	close          func() error
}

// NewHTTPServer wires storage, services and routes. The returned cleanup closes storage.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	dataset, err := loadDataset(cfg)
	if err != nil {
		return nil, nil, err
	}

	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		repos, err = newPostgresRepositories(ctx, cfg, dataset, logger)
	default:
		repos = newMemoryRepositories(dataset, logger)
	}
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	ids := idgen.NewUUIDGenerator()
	locks := keylock.New()

	pickSvc := usecase.NewPickService(repos.seasons, repos.fixtures, repos.teams, repos.picks, ids, locks, logger)
	scoringSvc := usecase.NewScoringService(repos.fixtures, repos.picks, logger)
	standingsSvc := usecase.NewStandingsService(repos.seasons, repos.fixtures, repos.picks, repos.participations, repos.eliminations)
	eliminationSvc := usecase.NewEliminationService(repos.seasons, repos.participations, repos.eliminations, standingsSvc, ids, logger)
	eliminationSvc.SetClaimLease(cfg.EliminationClaimLease)
	autoPickSvc := usecase.NewAutoPickService(
		repos.seasons,
		repos.fixtures,
		repos.teams,
		repos.picks,
		repos.participations,
		repos.eliminations,
		ids,
		locks,
		newAutoPickNotifier(cfg, logger),
		logger,
		cfg.AutoPickMaxWorkers,
	)
	seasonSvc := usecase.NewSeasonService(repos.seasons, logger)

	handler := httpapi.NewHandler(pickSvc, scoringSvc, standingsSvc, eliminationSvc, autoPickSvc, seasonSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func loadDataset(cfg config.Config) (memory.Dataset, error) {
	if cfg.SeedFile == "" {
		return memory.DefaultDataset(), nil
	}
	ds, err := memory.LoadDatasetFile(cfg.SeedFile)
	if err != nil {
		return memory.Dataset{}, fmt.Errorf("load seed file %s: %w", cfg.SeedFile, err)
	}
	return ds, nil
}

func newMemoryRepositories(ds memory.Dataset, logger *logging.Logger) repositories {
	store := memory.NewStore(ds)
	logger.Info("storage ready", "driver", config.StorageMemory, "seasons", len(ds.Seasons), "teams", len(ds.Teams))
	return repositories{
		seasons:        store.Seasons,
		teams:          store.Teams,
		fixtures:       store.Fixtures,
		picks:          store.Picks,
		eliminations:   store.Eliminations,
		participations: store.Participations,
		close:          func() error { return nil },
	}
}

func newPostgresRepositories(ctx context.Context, cfg config.Config, ds memory.Dataset, logger *logging.Logger) (repositories, error) {
	db, err := dbconn.Open(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return repositories{}, err
	}
	if err := postgres.BootstrapSeed(ctx, db, ds); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbconn.Name(cfg.DBURL))
	return repositories{
		seasons:        postgres.NewSeasonRepository(db),
		teams:          postgres.NewTeamRepository(db),
		fixtures:       postgres.NewFixtureRepository(db),
		picks:          postgres.NewPickRepository(db),
		eliminations:   postgres.NewEliminationRepository(db),
		participations: postgres.NewParticipationRepository(db),
		close:          db.Close,
	}, nil
}

func newAutoPickNotifier(cfg config.Config, logger *logging.Logger) usecase.AutoPickNotifier {
	if cfg.AutoPickWebhookURL == "" {
		return usecase.NewLoggingAutoPickNotifier(logger)
	}

	logger.Info("auto pick webhook enabled", "timeout", cfg.AutoPickWebhookTimeout.String())
	return notify.NewWebhookNotifier(notify.WebhookNotifierConfig{
		URL:     cfg.AutoPickWebhookURL,
		Token:   cfg.AutoPickWebhookToken,
		Timeout: cfg.AutoPickWebhookTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AutoPickWebhookCircuitEnabled,
			FailureThreshold: cfg.AutoPickWebhookCircuitFailures,
			OpenTimeout:      cfg.AutoPickWebhookCircuitOpenAfter,
			HalfOpenMaxReq:   cfg.AutoPickWebhookCircuitHalfOpen,
		},
	}, logger)
}
