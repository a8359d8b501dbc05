// Package mcp exposes the showcase store over the Model Context Protocol,
// so an agent can browse the catalog and drive selection, search and
// status the same way the interactive browser does.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/showcase/pkg/mcplog"
	"github.com/gnana997/showcase/pkg/store"
)

const (
	serverName    = "showcase"
	serverVersion = "0.1.0-dev"

	// DefaultHTTPAddr and DefaultHTTPPath are used by ServeHTTP when empty.
	DefaultHTTPAddr = "127.0.0.1:8080"
	DefaultHTTPPath = "/mcp"
)

// Server is the MCP server over one Store.
type Server struct {
	mcpServer *server.MCPServer
	store     *store.Store
	calls     *mcplog.Journal // nil disables the call journal
	logger    *slog.Logger
}

// NewServer creates a Server. calls may be nil.
func NewServer(st *store.Store, calls *mcplog.Journal, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{store: st, calls: calls, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithInstructions("Browse the design-system catalog and drive the showcase selection, search, theme and status state."),
		server.WithRecovery(),
	}
	if calls != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.journalMiddleware()))
	}
	s.mcpServer = server.NewMCPServer(serverName, serverVersion, opts...)
	s.mcpServer.AddTools(s.tools()...)

	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin/stdout until stdin closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP serves the streamable HTTP transport on addr at path until ctx
// is cancelled. onListening, if set, receives the bound address.
func (s *Server) ServeHTTP(ctx context.Context, addr, path string, onListening func(net.Addr)) error {
	if addr == "" {
		addr = DefaultHTTPAddr
	}
	if path == "" {
		path = DefaultHTTPPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(s.mcpServer))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.logger.Info("serving MCP over HTTP", "addr", ln.Addr().String(), "path", path)
	if onListening != nil {
		onListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
