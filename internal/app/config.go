package app

import (
	"context"

	"github.com/oshokin/molotov-go/internal/config"
	"github.com/oshokin/molotov-go/internal/logger"
)

// ExecuteConfigInitCommand executes the config init command.
// It writes the default configuration to path, or to the default file name when path is empty.
func ExecuteConfigInitCommand(ctx context.Context, path string) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		logger.Fatalf(ctx, "Failed to write configuration: %v", err)
	}

	logger.Infof(ctx, "Configuration written to %s", path)
	logger.Info(ctx, "")
	logger.Info(ctx, "Try sending a request:")
	logger.Infof(ctx, "molotov --config %s -vv https://example.com/", path)
}
