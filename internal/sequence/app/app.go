package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcHandler "github.com/anthanhphan/go-sequence-service/internal/sequence/adapter/inbound/grpc"
	httpHandler "github.com/anthanhphan/go-sequence-service/internal/sequence/adapter/inbound/http"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/adapter/outbound/guarded"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/adapter/outbound/redis_authority"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/adapter/outbound/sql_authority"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/config"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/port"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/service"
	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
	"github.com/anthanhphan/go-sequence-service/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	_ "github.com/glebarez/go-sqlite"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
)

type App struct {
	cfg          *config.Config
	server       *httpHandler.Server
	healthServer *grpcHandler.Server
	service      *service.SequenceServiceImpl
	closers      []func() error
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	return build(cfg)
}

func build(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	// 3. Range Authority
	authority, err := a.newAuthority()
	if err != nil {
		a.close()
		return nil, err
	}
	guardedAuthority := guarded.New(authority, resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "range-authority-" + cfg.App.Authority,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.BreakerOpenTimeout(),
		IsFailure: func(err error) bool {
			return !errors.Is(err, idgen.ErrInvalidConfig)
		},
		OnStateChange: func(name string, from, to resilience.CircuitBreakerState) {
			logger.Warnw("Range authority circuit changed", "breaker", name, "from", string(from), "to", string(to))
		},
	}))

	// 4. Id Generator
	policy := idgen.NewRangePolicy(cfg.IDs)
	var gen idgen.IdGenerator
	switch cfg.App.Mode {
	case config.ModeSimple:
		gen = idgen.NewSimpleGenerator(policy)
	default:
		gen, err = idgen.NewCachingGenerator(policy, guardedAuthority, idgen.CachingOptions{
			AcquireTimeout:    cfg.AcquireTimeout(),
			MaxRefillAttempts: cfg.App.MaxRefillAttempts,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to init id generator: %w", err)
		}
	}

	// 5. Service & Servers
	a.service = service.NewSequenceService(cfg, gen)
	a.server = httpHandler.NewServer(cfg, a.service, guardedAuthority)
	if cfg.Health.Addr != "" {
		a.healthServer = grpcHandler.NewServer(cfg.Health.Addr, guardedAuthority, grpc.ConnectionTimeout(5*time.Second))
	}

	return a, nil
}

// newAuthority builds the configured range authority and registers the
// cleanup for its client.
func (a *App) newAuthority() (idgen.RangeAuthority, error) {
	cfg := a.cfg
	switch cfg.App.Authority {
	case config.AuthorityRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)
		return redis_authority.New(client, cfg.Redis.KeyPrefix, cfg.App.Name), nil

	case config.AuthoritySQL:
		db, err := sql.Open(cfg.SQL.Driver, cfg.SQL.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sequence database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		authority, err := sql_authority.New(db, cfg.SQL.Table, cfg.App.Name)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.AcquireTimeout())
		defer cancel()
		if err := authority.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return authority, nil

	default:
		logger.Warnw("Using in-memory range authority, global ids are only unique within this process")
		return idgen.NewMemoryAuthority(), nil
	}
}

func (a *App) Run() error {
	// Warm up segments before accepting traffic
	warmCtx, cancel := context.WithTimeout(context.Background(), a.cfg.AcquireTimeout()*2)
	if err := a.service.Warmup(warmCtx, warmupTargets(a.cfg)); err != nil {
		logger.Warnw("Segment warm-up incomplete", "error", err.Error())
	}
	cancel()

	// Start HTTP
	logger.Infow("Sequence service starting",
		"addr", a.cfg.Server.Addr,
		"health_addr", a.cfg.Health.Addr,
		"mode", a.cfg.App.Mode,
		"authority", a.cfg.App.Authority)
	serverErrCh := make(chan error, 2)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	// Start gRPC health
	if a.healthServer != nil {
		go func() {
			if err := a.healthServer.Start(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				serverErrCh <- fmt.Errorf("grpc health server failed: %w", err)
			}
		}()
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = err
		logger.Errorw("Sequence server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down sequence services")
	if a.healthServer != nil {
		a.healthServer.Stop()
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := a.server.Stop(shutdownCtx); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	a.close()

	return runErr
}

func warmupTargets(cfg *config.Config) []port.WarmupTarget {
	targets := make([]port.WarmupTarget, 0, len(cfg.App.WarmupNames)+len(cfg.App.WarmupGlobalNames))
	for _, name := range cfg.App.WarmupNames {
		targets = append(targets, port.WarmupTarget{Name: name})
	}
	for _, name := range cfg.App.WarmupGlobalNames {
		targets = append(targets, port.WarmupTarget{Name: name, Global: true})
	}
	return targets
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warnw("Client close failed", "error", err.Error())
		}
	}
	a.closers = nil
}
