package config

import "blog-relay/internal/logger"

// InitLogger points the shared logger at the configured level.
// LOG_LEVEL has already been folded into Logging.Level by Load.
func InitLogger(cfg LoggingConfig) {
	logger.Init(cfg.Level)
}
