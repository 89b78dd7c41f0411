package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/match-predictions/internal/config"
	"github.com/riskibarqy/match-predictions/internal/domain/match"
	"github.com/riskibarqy/match-predictions/internal/domain/playerstats"
	"github.com/riskibarqy/match-predictions/internal/domain/prediction"
	"github.com/riskibarqy/match-predictions/internal/domain/teamstats"
	"github.com/riskibarqy/match-predictions/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/match-predictions/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-predictions/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-predictions/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-predictions/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-predictions/internal/platform/cache"
	idgen "github.com/riskibarqy/match-predictions/internal/platform/id"
	"github.com/riskibarqy/match-predictions/internal/platform/logging"
	"github.com/riskibarqy/match-predictions/internal/platform/resilience"
	"github.com/riskibarqy/match-predictions/internal/usecase"
)

// Server is the HTTP server plus the resources it owns.
type Server struct {
	*http.Server

	scheduler gocron.Scheduler
	db        *sqlx.DB
	redis     *redis.Client
	logger    *logging.Logger
}

type repositories struct {
	matches     match.Repository
	predictions prediction.Repository
	teams       teamstats.Repository
	players     playerstats.Repository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	srv := &Server{logger: logger}

	repos, err := srv.buildRepositories(ctx, cfg)
	if err != nil {
		_ = srv.closeResources()
		return nil, err
	}

	var stores []*cache.Store
	if cfg.CacheEnabled {
		matchStore := cache.NewStore(cfg.CacheTTL)
		stores = append(stores, matchStore)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, matchStore)
	}

	boardSvc := usecase.NewBoardService(
		repos.matches,
		repos.predictions,
		idgen.NewUUIDGenerator(),
		usecase.BoardConfig{
			Location:    cfg.Location,
			RecentLimit: cfg.BoardRecentLimit,
			Consensus: prediction.AggregateOptions{
				IncludeImpliedWinners: cfg.ConsensusIncludeImpliedWinners,
			},
		},
		logger,
	)

	teamStore := cache.NewStore(cfg.TeamStatsCacheTTL)
	stores = append(stores, teamStore)
	teamSvc := usecase.NewTeamStatsService(
		repos.teams,
		repos.players,
		srv.buildTeamDataCache(cfg, teamStore),
		usecase.TeamStatsConfig{PlayerLimit: cfg.TeamStatsPlayerLimit},
		logger,
	)
	warmer := usecase.NewCacheWarmer(boardSvc, teamSvc, cfg.CacheWarmWorkers, logger)

	principalStore := cache.NewStore(cfg.AnubisCacheTTL)
	stores = append(stores, principalStore)
	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectURL,
			AdminKey:       cfg.AnubisAdminKey,
			Circuit:        cfg.AnubisCircuit,
			Principals:     principalStore,
		},
		logger,
	)

	if err := srv.scheduleJobs(cfg, warmer, stores); err != nil {
		_ = srv.closeResources()
		return nil, err
	}

	handler := httpapi.NewHandler(boardSvc, teamSvc, warmer, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		MetricsEnabled:     cfg.MetricsEnabled,
	})

	srv.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv, nil
}

func (s *Server) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		day := time.Now().In(cfg.Location)
		s.logger.Info("using in-memory storage", "seed_day", day.Format(time.DateOnly))
		return repositories{
			matches:     memory.NewMatchRepository(memory.SeedMatches(day)),
			predictions: memory.NewPredictionRepository(memory.SeedPredictions(day)...),
			teams:       memory.NewTeamStatsRepository(memory.SeedTeamStats()),
			players:     memory.NewPlayerStatsRepository(memory.SeedPlayerStats()),
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	s.db = db

	return repositories{
		matches:     postgres.NewMatchRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		teams:       postgres.NewTeamStatsRepository(db),
		players:     postgres.NewPlayerStatsRepository(db),
	}, nil
}

// buildTeamDataCache shares team data through redis when enabled, otherwise
// keeps it in process.
func (s *Server) buildTeamDataCache(cfg config.Config, local *cache.Store) cache.Cache[usecase.TeamData] {
	if !cfg.RedisEnabled {
		return cache.NewMemory[usecase.TeamData](local)
	}

	s.redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	s.logger.Info("team data cache backed by redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)

	return cache.NewRedis[usecase.TeamData](s.redis, local, cache.RedisConfig{
		KeyPrefix: cfg.RedisKeyPrefix,
		TTL:       cfg.TeamStatsCacheTTL,
		Breaker:   resilience.NewFromConfig(cfg.RedisCircuit),
	}, s.logger)
}

// Start runs background jobs. The HTTP listener is started by the caller.
func (s *Server) Start() {
	if s.scheduler != nil {
		s.scheduler.Start()
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.Server != nil {
		if err := s.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if err := s.closeResources(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Server) closeResources() error {
	var errs []error
	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown scheduler: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
