package common

import (
	"github.com/futig/ragchat-backend/internal/config"
	pkgHTTP "github.com/futig/ragchat-backend/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds a JSON connector for baseURL using the shared
// client timeouts. auth is applied last so it wraps the logging transport.
func NewBaseConnector(baseURL string, cfg config.HTTPClientConfig, logger *zap.Logger, auth pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: baseURL,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		auth,
	)
}
