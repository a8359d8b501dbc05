package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	mcpserver "github.com/gnana997/showcase/pkg/mcp"
	"github.com/gnana997/showcase/pkg/mcplog"
	"github.com/gnana997/showcase/pkg/store"
	"github.com/gnana997/showcase/pkg/watcher"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and its state over the Model Context Protocol",
		Long: `serve exposes the catalog, selection, search, theme and status tools over
MCP. The stdio transport is the default; use --transport http for the
streamable HTTP transport. When the catalog comes from a file it is reloaded
on change unless watch.enabled is false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Serve
			transport := strings.ToLower(strings.TrimSpace(cfg.Transport))
			if transport != "stdio" && transport != "http" {
				return fmt.Errorf("unsupported transport %q (expected stdio or http)", cfg.Transport)
			}

			st, err := a.newStore()
			if err != nil {
				return err
			}

			stop, err := a.startWatcher(st)
			if err != nil {
				return err
			}
			defer stop()

			calls, err := mcplog.Open(a.cfg.Log.File)
			if err != nil {
				return err
			}
			defer calls.Close()

			srv := mcpserver.NewServer(st, calls, a.logger)
			if transport == "stdio" {
				return srv.ServeStdio()
			}
			return srv.ServeHTTP(cmd.Context(), cfg.Addr, cfg.Path, func(addr net.Addr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "MCP HTTP server listening on http://%s%s\n", addr, cfg.Path)
			})
		},
	}

	f := cmd.Flags()
	f.String("transport", "stdio", "transport to use: stdio or http")
	f.String("addr", "127.0.0.1:8080", "listen address for the http transport")
	f.String("path", "/mcp", "endpoint path for the http transport")
	f.String("call-log", "", "append one JSON line per tool call to this file")
	f.Bool("watch", true, "reload the catalog file when it changes")
	bindFlags(a, cmd, map[string]string{
		"serve.transport": "transport",
		"serve.addr":      "addr",
		"serve.path":      "path",
		"log.file":        "call-log",
		"watch.enabled":   "watch",
	})
	return cmd
}

// bindFlags binds command flags to config keys before the config is read.
func bindFlags(a *app, cmd *cobra.Command, keys map[string]string) {
	prev := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		for key, flag := range keys {
			if err := a.v.BindPFlag(key, c.Flags().Lookup(flag)); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
		cfg, err := loadConfig(a.v)
		if err != nil {
			return err
		}
		a.cfg = cfg
		if prev != nil {
			return prev(c, args)
		}
		return nil
	}
}

// startWatcher reloads the catalog file into st on change. It is a no-op
// for the embedded catalog or when watching is disabled.
func (a *app) startWatcher(st *store.Store) (func(), error) {
	path := a.catalogPath()
	if path == "" || !a.cfg.Watch.Enabled {
		return func() {}, nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand catalog path: %w", err)
	}
	w, err := watcher.New(path, st, watcher.Options{Debounce: a.cfg.Watch.Debounce()}, a.logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return func() {
		if err := w.Stop(); err != nil {
			a.logger.Warn("failed to stop catalog watcher", "error", err)
		}
	}, nil
}
