// Package app wires configuration, clients, the trigger engine and the
// operational HTTP surface into a runnable process.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/deepakdhaka-1/polymarket-connector/internal/clob"
	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
	"github.com/deepakdhaka-1/polymarket-connector/internal/markets"
	"github.com/deepakdhaka-1/polymarket-connector/internal/sink"
	"github.com/deepakdhaka-1/polymarket-connector/internal/trigger"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/cache"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/config"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/healthprobe"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg         *config.Config
	logger      *zap.Logger
	probe       *healthprobe.Probe
	httpServer  *httpserver.Server
	engine      *trigger.Engine
	eventSink   sink.Sink
	marketCache cache.Cache
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	probe := healthprobe.New()

	marketCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	gammaClient := gamma.NewClient(cfg.GammaURL, logger)

	detector, err := setupDetector(cfg, logger, gammaClient)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup detector: %w", err)
	}

	eventSink, err := setupSink(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup sink: %w", err)
	}

	engine := trigger.NewEngine(&trigger.EngineConfig{
		Detector:       detector,
		Consumer:       eventSink,
		Details:        markets.NewCachedDetailClient(markets.NewGammaDetailClient(gammaClient), marketCache),
		Interval:       cfg.PollInterval,
		IncludeDetails: cfg.IncludeDetails,
		Logger:         logger,
	})

	httpServer := httpserver.New(&httpserver.Config{
		Port:   cfg.HTTPPort,
		Logger: logger,
		Probe:  probe,
		Engine: engine,
	})

	return &App{
		cfg:         cfg,
		logger:      logger,
		probe:       probe,
		httpServer:  httpServer,
		engine:      engine,
		eventSink:   eventSink,
		marketCache: marketCache,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000, // 10x expected max items
		MaxCost:     1000,
		BufferItems: 64,
		Logger:      logger,
	})
}

func setupDetector(cfg *config.Config, logger *zap.Logger, gammaClient *gamma.Client) (trigger.Detector, error) {
	switch cfg.TriggerOn {
	case config.TriggerNewMarket:
		return trigger.NewNewMarketDetector(gammaClient, cfg.MinVolume, cfg.MarketLimit), nil

	case config.TriggerPriceChange:
		return trigger.NewPriceChangeDetector(gammaClient, cfg.MarketID, cfg.PriceThreshold), nil

	case config.TriggerMarketResolution:
		return trigger.NewResolutionDetector(gammaClient, cfg.MarketID), nil

	case config.TriggerOrderFilled:
		if !cfg.HasCredentials() {
			return nil, fmt.Errorf("the %s trigger requires the full credential set", cfg.TriggerOn)
		}
		clobClient, err := clob.NewClient(&clob.ClientConfig{
			BaseURL:       cfg.ClobURL,
			APIKey:        cfg.APIKey,
			Secret:        cfg.Secret,
			Passphrase:    cfg.Passphrase,
			PrivateKey:    cfg.PrivateKey,
			ProxyAddress:  cfg.ProxyAddress,
			SignatureType: cfg.SignatureType,
			ChainID:       cfg.ChainID,
			Timeout:       cfg.RequestTimeout,
			Logger:        logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create clob client: %w", err)
		}
		return trigger.NewOrderFilledDetector(clobClient, cfg.MarketID), nil

	default:
		return nil, fmt.Errorf("unknown trigger kind %q", cfg.TriggerOn)
	}
}

func setupSink(cfg *config.Config, logger *zap.Logger) (sink.Sink, error) {
	if cfg.SinkMode == "postgres" {
		pgSink, err := sink.NewPostgresSink(&sink.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres sink: %w", err)
		}
		return pgSink, nil
	}

	return sink.NewConsoleSink(logger), nil
}
