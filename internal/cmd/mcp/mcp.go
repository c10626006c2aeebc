// Package mcp parses MCP command flags and serves the stdio transport.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/roll/internal/mcp/service"
	"github.com/louisbranch/roll/internal/platform/config"
	"github.com/louisbranch/roll/internal/platform/otel"
)

// Config holds MCP command configuration.
type Config struct {
	HistoryPath string `env:"ROLL_HISTORY_PATH"`
	Transport   string `env:"ROLL_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite history path (empty disables history)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "roll-mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		HistoryPath: cfg.HistoryPath,
		Transport:   service.TransportKind(cfg.Transport),
	})
}
