package db

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/sqlgrep/internal/retry"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// tokenExpiryWarning is the remaining lifetime below which a fresh token is reported.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector connects with a short-lived cloud token as the
// password (AWS IAM, Azure Entra ID). A new token is fetched on every attempt.
type TokenBasedConnector struct {
	config        *sqlgrep.ConnectionConfig
	tokenProvider TokenProvider
	open          openFunc
	retryExecutor *retry.Executor
	providerName  string
	logger        sqlgrep.Logger
}

// NewTokenBasedConnector creates a connector that authenticates through tokenProvider.
// providerName appears in diagnostics (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *sqlgrep.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger sqlgrep.Logger) *TokenBasedConnector {
	open, classifier := openerFor(config, logger)
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		open:          open,
		retryExecutor: retry.NewExecutor(classifier, retry.DefaultBackoff()).WithLogger(logger, retryLabel),
		providerName:  providerName,
		logger:        logger,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (sqlgrep.Source, error) {
	var source sqlgrep.Source

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
		}

		if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
			c.logger.Warn("%s token expires in %v", c.providerName, remaining.Round(time.Second))
		}
		c.logger.Verbose("Authenticating with %s", c.tokenProvider)

		withToken := *c.config
		withToken.Password = token

		source, err = c.open(ctx, &withToken)
		return err
	})
	if err != nil {
		return nil, err
	}
	return source, nil
}
