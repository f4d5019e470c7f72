// Package mcp implements the Model Context Protocol server, exposing
// svnparse operations to LLM-driven code browsers. This enables an AI
// assistant to request a commit parse, or read back an already-parsed
// commit's effect set, through a standardised protocol instead of shelling
// out to the CLI.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ojciec-dev/svnparse/internal/config"
	"github.com/ojciec-dev/svnparse/internal/store"
	"github.com/ojciec-dev/svnparse/internal/svncli"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling AI-driven code browsers
// to call svnparse_parse and svnparse_query without a CLI round trip.
func Serve(dbPath string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		return err
	}
	defer s.Close()
	if err := s.Init(); err != nil {
		slog.Error("failed to initialise store", "error", err)
		return err
	}

	h := &handlers{
		cfg:     cfg,
		store:   s,
		invoker: svncli.New(cfg.SVNBinary(), time.Duration(cfg.TimeoutSeconds())*time.Second),
	}

	srv := server.NewMCPServer(
		"svnparse",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(srv, h)

	slog.Info("svnparse MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(srv)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the store, config,
// and svn invoker shared across tool calls.
type handlers struct {
	cfg     *config.Config
	store   *store.Store
	invoker svncli.Fetcher
}

// registerTools exposes svnparse operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("svnparse_parse",
			mcp.WithDescription("Parse one Subversion commit and persist its effect set (add/delete/move/copy/change per path)"),
			mcp.WithString("repo_uri", mcp.Required(), mcp.Description("Repository root URI, e.g. https://svn.example.com/repo")),
			mcp.WithNumber("revision", mcp.Required(), mcp.Description("Revision number to parse")),
		),
		h.parseCommit,
	)

	s.AddTool(
		mcp.NewTool("svnparse_query",
			mcp.WithDescription("Read back the path-change log and filesystem delta for an already-parsed revision"),
			mcp.WithString("repo_uri", mcp.Required(), mcp.Description("Repository root URI, e.g. https://svn.example.com/repo")),
			mcp.WithNumber("revision", mcp.Required(), mcp.Description("Revision number to query")),
		),
		h.queryCommit,
	)
}
