// Package mcp exposes the diagnostic report over the Model Context
// Protocol on stdio, so support tooling and agents can pull the same
// data the CLI prints.
package mcp

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fontdiag/fontdiag/pkg/probe"
)

const serverName = "fontdiag"

// DefaultCacheTTL bounds how long a probe result is reused before the
// underlying sources are queried again. Agent bursts would otherwise
// fork a subprocess storm.
const DefaultCacheTTL = 5 * time.Second

const cacheSize = 64

// Runner is the report surface the server needs; *probe.Runner
// implements it.
type Runner interface {
	ReportText(ctx context.Context, opts probe.Options) (string, error)
	ProbeText(ctx context.Context, name string, opts probe.Options) (string, error)
	Infos() []probe.Info
}

// Options configures the server.
type Options struct {
	Version string
	// CacheTTL overrides DefaultCacheTTL; zero means the default.
	CacheTTL time.Duration
	// LogFile, when non-empty, receives one JSONL entry per tool
	// call.
	LogFile string
}

// Server is the MCP server over a report Runner.
type Server struct {
	mcpServer *server.MCPServer
	runner    Runner
	cache     *expirable.LRU[string, string]
	calls     *callLog
}

// NewServer builds the server and registers its tools.
func NewServer(runner Runner, opts Options) (*Server, error) {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	s := &Server{
		runner: runner,
		cache:  expirable.NewLRU[string, string](cacheSize, nil, ttl),
	}

	if opts.LogFile != "" {
		calls, err := newCallLog(opts.LogFile)
		if err != nil {
			return nil, err
		}
		s.calls = calls
	}

	serverOpts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if s.calls != nil {
		serverOpts = append(serverOpts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer(serverName, opts.Version, serverOpts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: getReportTool(), Handler: s.handleGetReport},
		server.ServerTool{Tool: listProbesTool(), Handler: s.handleListProbes},
		server.ServerTool{Tool: runProbeTool(), Handler: s.handleRunProbe},
		server.ServerTool{Tool: matchFontTool(), Handler: s.handleMatchFont},
	)
	return s, nil
}

// ServeStdio runs the server on stdin/stdout until the client hangs
// up.
func (s *Server) ServeStdio() error {
	defer s.closeCallLog()
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) closeCallLog() {
	if s.calls != nil {
		_ = s.calls.Close()
	}
}
