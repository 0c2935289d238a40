package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jacobbria/AZ-webApp/internal/auth"
	"github.com/jacobbria/AZ-webApp/internal/config"
	"github.com/jacobbria/AZ-webApp/internal/database"
	"github.com/jacobbria/AZ-webApp/internal/events"
	"github.com/jacobbria/AZ-webApp/internal/handlers"
	"github.com/jacobbria/AZ-webApp/internal/logger"
	"github.com/jacobbria/AZ-webApp/internal/services"
	"github.com/jacobbria/AZ-webApp/internal/telemetry"
	"github.com/jacobbria/AZ-webApp/web"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "job-board"

// llmClients holds the two Gemini clients: job parsing may run on its own key.
type llmClients struct {
	Main   *services.LLMService
	Parser *services.LLMService
}

func llmConfig(cfg *config.Config, apiKey string) services.LLMConfig {
	return services.LLMConfig{
		APIKey:            apiKey,
		Model:             cfg.GeminiModel,
		Timeout:           cfg.LLMTimeout,
		MaxRetries:        cfg.LLMMaxRetries,
		RetryDelay:        cfg.LLMRetryDelay,
		RequestsPerSecond: cfg.LLMRequestsPerSec,
	}
}

func newLLMClients(cfg *config.Config, logger *zap.Logger) (*llmClients, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	primary, err := services.NewLLMService(ctx, llmConfig(cfg, cfg.GeminiAPIKey), logger)
	if err != nil {
		return nil, err
	}
	if cfg.GeminiParserAPIKey == cfg.GeminiAPIKey {
		return &llmClients{Main: primary, Parser: primary}, nil
	}

	parser, err := services.NewLLMService(ctx, llmConfig(cfg, cfg.GeminiParserAPIKey), logger.Named("parser"))
	if err != nil {
		return nil, err
	}
	return &llmClients{Main: primary, Parser: parser}, nil
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (events.Publisher, error) {
	pub, err := events.NewPublisher(cfg.NATSURL, cfg.NATSConnTimeout, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pub.Close()
			return nil
		},
	})
	return pub, nil
}

func newJobService(lc fx.Lifecycle, db *gorm.DB, pub events.Publisher, logger *zap.Logger) *services.JobService {
	svc := services.NewJobService(db, pub, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Initialize(ctx)
		},
	})
	return svc
}

func newParserService(c *llmClients, logger *zap.Logger) *services.ParserService {
	return services.NewParserService(c.Parser, logger)
}

func newQueryService(c *llmClients, logger *zap.Logger) *services.QueryService {
	return services.NewQueryService(c.Main, logger)
}

func newSummaryService(c *llmClients, logger *zap.Logger) *services.SummaryService {
	return services.NewSummaryService(c.Main, logger)
}

func newAnalysisService(q *services.QueryService, jobs *services.JobService, s *services.SummaryService, logger *zap.Logger) *services.AnalysisService {
	return services.NewAnalysisService(q, jobs, s, logger)
}

func newSessionStore(db *gorm.DB, cfg *config.Config) (sessions.Store, error) {
	return auth.NewSessionStore(db, cfg, true)
}

func newRouter(
	cfg *config.Config,
	logger *zap.Logger,
	tmpl *template.Template,
	store sessions.Store,
	jobs *handlers.JobHandler,
	pages *handlers.PageHandler,
	authHandler *handlers.AuthHandler,
) *gin.Engine {
	return handlers.NewRouter(handlers.RouterParams{
		Config:       cfg,
		Logger:       logger,
		Templates:    tmpl,
		SessionStore: store,
		Jobs:         jobs,
		Pages:        pages,
		Auth:         authHandler,
	})
}

// startTracing installs the OTLP exporter before any service is built so
// their tracers resolve to it.
func startTracing(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) {
	shutdown, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELCollectorURL)
	if err != nil {
		logger.Warn("Tracing disabled", zap.Error(err))
		return
	}
	lc.Append(fx.Hook{OnStop: shutdown})
}

func logStartupNotes(cfg *config.Config, logger *zap.Logger) {
	if cfg.EnvFileMissing {
		logger.Warn("No .env file found; using process environment only")
	}
}

func startServer(lc fx.Lifecycle, cfg *config.Config, r *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info("Server starting", zap.Int("port", cfg.Port), zap.String("env", cfg.AppEnv))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Provide(
			config.Load,
			logger.New,
			newDatabase,
			newPublisher,
			newLLMClients,
			newJobService,
			newParserService,
			newQueryService,
			newSummaryService,
			newAnalysisService,
			auth.NewProvider,
			newSessionStore,
			web.Templates,
			handlers.NewJobHandler,
			handlers.NewPageHandler,
			handlers.NewAuthHandler,
			newRouter,
		),
		fx.Invoke(logStartupNotes, startTracing, startServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
