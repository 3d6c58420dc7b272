package cmd

import (
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/clob"
	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/config"
	"go.uber.org/zap"
)

// setup loads configuration and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, logger, nil
}

func newClobClient(cfg *config.Config, logger *zap.Logger) (*clob.Client, error) {
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("POLYMARKET_API_KEY, POLYMARKET_SECRET, POLYMARKET_PASSPHRASE and POLYMARKET_PRIVATE_KEY must be set")
	}

	return clob.NewClient(&clob.ClientConfig{
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
}

// newPublicClobClient builds a read-only client for the credential-free
// endpoints (book, price, trades).
func newPublicClobClient(cfg *config.Config, logger *zap.Logger) (*clob.Client, error) {
	return clob.NewClient(&clob.ClientConfig{
		BaseURL: cfg.ClobURL,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
}

func newGammaClient(cfg *config.Config, logger *zap.Logger) *gamma.Client {
	return gamma.NewClient(cfg.GammaURL, logger)
}
