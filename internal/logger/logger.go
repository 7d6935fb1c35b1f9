// Package logger provides the zap logger and HTTP request logging.
package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/camille-guillard/invoice-api/internal/config"
)

var Module = fx.Module("logger",
	fx.Provide(New),
)

// New builds the application logger. Development gets the human-readable
// console encoder, everything else structured JSON.
func New(cfg config.Config) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
