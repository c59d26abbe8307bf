// @title                       LeadVault CRM API
// @version                     1.0
// @description                 Multi-tenant CRM backend: authentication, imports, leads and users.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/leadvault/crm-api/internal/api"
	"github.com/leadvault/crm-api/internal/api/handler"
	"github.com/leadvault/crm-api/internal/core/ports"
	"github.com/leadvault/crm-api/internal/core/service"
	"github.com/leadvault/crm-api/internal/infrastructure/config"
	"github.com/leadvault/crm-api/internal/infrastructure/db/gormdb"
	"github.com/leadvault/crm-api/internal/infrastructure/db/memory"
	mongodb "github.com/leadvault/crm-api/internal/infrastructure/db/mongo"
	redisdb "github.com/leadvault/crm-api/internal/infrastructure/db/redis"
	"github.com/leadvault/crm-api/internal/infrastructure/queue"
	"github.com/leadvault/crm-api/pkg/logger"
)

const serviceName = "crm-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// repositories is the persistence backend selected by DB_DRIVER.
type repositories struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	imports  ports.ImportRepository
	leads    ports.LeadRepository
	sessions ports.SessionRecorder
	ping     handler.Pinger
	close    func() error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.InsecureSecret {
		log.Warn().Msg("JWT_SECRET is not set; using an insecure development secret")
	}

	repos, err := openRepositories(ctx, cfg, logger.Component("database"))
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	readiness := map[string]handler.Pinger{"database": repos.ping}

	var authOpts []service.AuthOption
	authOpts = append(authOpts, service.WithBcryptCost(cfg.BcryptCost))

	// --- Token revocation (optional) ---
	if cfg.RevocationEnabled() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer closeRedis(rdb, log)
		authOpts = append(authOpts, service.WithRevoker(redisdb.NewRevocationList(rdb)))
		readiness["redis"] = func(ctx context.Context) error { return redisdb.Ping(ctx, rdb, 2*time.Second) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	// --- Session audit ---
	sink := repos.sessions
	if cfg.Audit.Sink == config.AuditSinkMongo {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer disconnectMongo(client, log)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		sink = mongodb.NewSessionRepository(db)
		readiness["mongodb"] = func(ctx context.Context) error { return mongodb.Ping(ctx, db) }
	}

	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, sink, logger.Component("audit"))
	dispatcher.Start(auditCtx)
	defer func() {
		stopAudit()
		dispatcher.Wait()
	}()
	authOpts = append(authOpts, service.WithSessionRecorder(dispatcher))

	// --- Services ---
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(repos.users, repos.roles, tokens, logger.Component("auth"), authOpts...)

	e := api.NewRouter(api.Services{
		Auth:       authService,
		Verifier:   authService,
		Authorizer: service.NewPermissionService(repos.roles),
		Imports:    service.NewImportService(repos.imports, logger.Component("imports")),
		Leads:      service.NewLeadService(repos.leads, repos.imports, logger.Component("leads")),
		Users:      service.NewUserService(repos.users),
	}, api.Options{
		Log:                log,
		RequestTimeout:     cfg.RequestTimeout,
		CORSOrigins:        cfg.CORSOrigins,
		EnableSwagger:      !cfg.IsProduction(),
		EnforcePermissions: cfg.EnforcePermissions,
		Readiness:          readiness,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("db_driver", cfg.Database.Driver).
			Bool("enforce_permissions", cfg.EnforcePermissions).
			Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.New()
		if cfg.Database.SeedDemo {
			if err := store.SeedDemo(ctx); err != nil {
				return nil, err
			}
		}
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return &repositories{
			users:    store.Users(),
			roles:    store.Roles(),
			imports:  store.Imports(),
			leads:    store.Leads(),
			sessions: store.Sessions(),
			ping:     func(context.Context) error { return nil },
			close:    func() error { return nil },
		}, nil
	}

	db, err := gormdb.Open(gormdb.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log)
	if err != nil {
		return nil, err
	}
	if err := gormdb.Ping(ctx, db); err != nil {
		_ = gormdb.Close(db)
		return nil, err
	}
	if err := prepareSchema(ctx, cfg, db, log); err != nil {
		_ = gormdb.Close(db)
		return nil, err
	}

	return &repositories{
		users:    gormdb.NewUserRepository(db),
		roles:    gormdb.NewRoleRepository(db),
		imports:  gormdb.NewImportRepository(db),
		leads:    gormdb.NewLeadRepository(db),
		sessions: gormdb.NewSessionRepository(db),
		ping:     func(ctx context.Context) error { return gormdb.Ping(ctx, db) },
		close:    func() error { return gormdb.Close(db) },
	}, nil
}

func prepareSchema(ctx context.Context, cfg *config.Config, db *gorm.DB, log zerolog.Logger) error {
	if cfg.Database.AutoMigrate {
		if err := gormdb.Migrate(ctx, db); err != nil {
			return err
		}
		if err := gormdb.SeedRoles(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("schema migrated")
	}
	if cfg.Database.SeedDemo {
		if err := gormdb.SeedDemo(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("demo account seeded")
	}
	return nil
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("close redis")
	}
}

func disconnectMongo(client *mongodriver.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("disconnect mongo")
	}
}
