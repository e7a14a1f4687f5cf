package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"uiforge/internal/assistant"
	"uiforge/internal/auth"
	"uiforge/internal/components"
	"uiforge/internal/config"
	"uiforge/internal/events"
	"uiforge/internal/localization"
	"uiforge/internal/logging"
	"uiforge/internal/storage"
	"uiforge/internal/translations"
)

const shutdownTimeout = 10 * time.Second

// App is the wired service: one store, one event hub, one translation cache.
type App struct {
	Config config.Config
	Logger *zap.Logger
	Store  *storage.Store
	Hub    *events.Hub
	Cache  *translations.Cache
	Router *gin.Engine

	closeSlot func() error
}

// NewSlot opens the slot backend named in cfg. The returned func releases it.
func NewSlot(cfg config.StorageConfig) (storage.Slot, func() error, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemorySlot(), func() error { return nil }, nil
	case "file":
		return storage.NewFileSlot(cfg.DataDir), func() error { return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return storage.NewRedisSlot(client, cfg.RedisPrefix), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func NewProvider(cfg config.AssistantConfig) assistant.Provider {
	if cfg.Provider == "openai" {
		return assistant.NewOpenAI(cfg.BaseURL, cfg.APIKey, cfg.Model, time.Duration(cfg.TimeoutSeconds)*time.Second)
	}
	return assistant.NewMock()
}

func NewTokenService(cfg config.AuthConfig) auth.TokenService {
	return auth.NewTokenService(cfg.Secret, cfg.Issuer, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	slot, closeSlot, err := NewSlot(cfg.Storage)
	if err != nil {
		return nil, err
	}
	extractor, err := localization.NewExtractor(cfg.Localization.Extractor)
	if err != nil {
		_ = closeSlot()
		return nil, err
	}

	store := storage.New(slot,
		storage.WithKey(cfg.Storage.Key),
		storage.WithLogger(logger.Named("storage")),
	)
	hub := events.NewHub(logger.Named("events"))
	cache := translations.NewCache(store, logger.Named("translations"))

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Hub:       hub,
		Cache:     cache,
		closeSlot: closeSlot,
	}
	app.Router = app.routes(extractor)
	return app, nil
}

func (a *App) routes(extractor localization.Extractor) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(a.Logger.Named("http")), logging.GinRecovery(a.Logger.Named("http")))
	_ = r.SetTrustedProxies(a.Config.Server.TrustedProxies)

	guard := auth.RequireToken(NewTokenService(a.Config.Auth))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"storage":    a.Config.Storage.Backend,
			"ws_clients": a.Hub.Stats().WSClients,
		})
	})
	r.GET("/ws", events.WSHandler(a.Hub))

	compHandler := components.NewHandler(components.NewRepo(a.Store), a.Hub, a.Logger.Named("components"))
	compHandler.RegisterPublicRoutes(r.Group("/components"))
	compHandler.RegisterProtectedRoutes(r.Group("/components", guard))

	engine := localization.NewEngine(a.Store, extractor, a.Logger.Named("localization"))
	locHandler := localization.NewHandler(engine, a.Cache, a.Logger.Named("localization"))
	locHandler.RegisterPublicRoutes(r.Group(""))
	locHandler.RegisterProtectedRoutes(r.Group("", guard))

	translations.NewHandler(a.Cache, a.Logger.Named("translations")).RegisterRoutes(r.Group(""))

	genHandler := assistant.NewHandler(NewProvider(a.Config.Assistant), a.Logger.Named("assistant"))
	genHandler.RegisterRoutes(r.Group("", guard))

	return r
}

// Run initializes the store, serves HTTP until ctx is done, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	srv := &http.Server{
		Addr:              a.Config.Server.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("shutdown requested")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	return errors.Join(a.Store.Close(), a.closeSlot())
}
