// Package app provides the dependency injection container for assembling
// application components. Components are created lazily on first access.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authService "github.com/loomchat/chatvault/internal/auth/service"
	authUseCase "github.com/loomchat/chatvault/internal/auth/usecase"
	chatHTTP "github.com/loomchat/chatvault/internal/chat/http"
	chatUseCase "github.com/loomchat/chatvault/internal/chat/usecase"
	"github.com/loomchat/chatvault/internal/config"
	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	cryptoService "github.com/loomchat/chatvault/internal/crypto/service"
	cryptoUseCase "github.com/loomchat/chatvault/internal/crypto/usecase"
	"github.com/loomchat/chatvault/internal/database"
	"github.com/loomchat/chatvault/internal/http"
	"github.com/loomchat/chatvault/internal/metrics"
)

// Container holds all application dependencies and provides methods to access
// them. Thread-safe via per-component sync.Once initialization.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	kmsService     cryptoService.KMSService
	kekProvider    cryptoService.KekProvider
	aeadManager    cryptoService.AEADManager
	keyManager     cryptoService.KeyManager
	contentCodec   cryptoService.ContentCodec
	dekCache       *cryptoDomain.DekCache
	chatKeyRepo    cryptoUseCase.ChatKeyRepository
	chatKeyUseCase cryptoUseCase.ChatKeyUseCase

	// Chat
	chatRepo    chatUseCase.ChatRepository
	messageRepo chatUseCase.MessageRepository
	chatUC      chatUseCase.ChatUseCase
	chatHandler *chatHTTP.ChatHandler

	// Auth
	secretService authService.SecretService
	clientRepo    authUseCase.ClientRepository
	clientUC      authUseCase.ClientUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	kmsServiceInit      sync.Once
	kekProviderInit     sync.Once
	aeadManagerInit     sync.Once
	keyManagerInit      sync.Once
	contentCodecInit    sync.Once
	dekCacheInit        sync.Once
	chatKeyRepoInit     sync.Once
	chatKeyUseCaseInit  sync.Once
	chatRepoInit        sync.Once
	messageRepoInit     sync.Once
	chatUseCaseInit     sync.Once
	chatHandlerInit     sync.Once
	secretServiceInit   sync.Once
	clientRepoInit      sync.Once
	clientUseCaseInit   sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection, establishing it on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if err, exists := c.initErrors["db"]; exists {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err, exists := c.initErrors["txManager"]; exists {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if err, exists := c.initErrors["metricsProvider"]; exists {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. Falls back to a
// no-op implementation when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = bm
	})
	if err, exists := c.initErrors["businessMetrics"]; exists {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server instance, assembling handlers and
// middleware on first access.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		handler, err := c.ChatHandler()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		deps := http.ServerDeps{ChatHandler: handler}

		if c.config.AuthEnabled {
			clientUC, err := c.ClientUseCase()
			if err != nil {
				c.initErrors["httpServer"] = err
				return
			}
			deps.ClientUseCase = clientUC
		}

		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		deps.MeterProvider = provider

		c.httpServer = http.NewServer(c.config, deps, c.Logger())
	})
	if err, exists := c.initErrors["httpServer"]; exists {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err, exists := c.initErrors["metricsServer"]; exists {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources. Cached plaintext
// DEKs are zeroed before the process exits.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.dekCache != nil {
		c.dekCache.Clear()
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates a structured JSON logger based on the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
