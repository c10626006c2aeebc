// Package service hosts the MCP server exposing dice notation tools.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roll/internal/history"
	"github.com/louisbranch/roll/internal/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Roll MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

// TransportStdio uses standard input/output for MCP.
const TransportStdio TransportKind = "stdio"

// Config configures the MCP server.
type Config struct {
	// HistoryPath is the SQLite history path. Empty disables history.
	HistoryPath string
	Transport   TransportKind
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	store     *history.Store
}

// New creates a configured MCP server. When historyPath is non-empty
// rolls are recorded to a SQLite history store.
func New(historyPath string) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	var store *history.Store
	if historyPath != "" {
		var err error
		store, err = history.Open(historyPath)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
	}

	server := &Server{mcpServer: mcpServer, store: store}
	registerRollTools(mcpServer, server.recorder())
	return server, nil
}

// Close closes the history store.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *Server) recorder() domain.Recorder {
	if s.store == nil {
		return nil
	}
	return s.store
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithTransport creates a server and serves it over the provided
// transport.
func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	server, err := New(cfg.HistoryPath)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close history store: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close history store: %w", err, closeErr)
	}
	return err
}
