package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gnana997/showcase/pkg/catalog"
	"github.com/gnana997/showcase/pkg/prefs"
	"github.com/gnana997/showcase/pkg/store"
	"github.com/gnana997/showcase/pkg/util"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	configFile  string
	catalogFlag string

	v      *viper.Viper
	cfg    *Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "showcase",
		Short: "Browse and track a design-system widget catalog.",
		Long: `showcase loads a catalog of restyled UI widgets grouped by category and
lets you search it, track implementation status, browse it interactively or
serve it to agents over the Model Context Protocol.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default .showcase.yaml in ., $SHOWCASE_CONFIG_PATH or ~)")
	pf.StringVar(&a.catalogFlag, "catalog", "", "catalog file, YAML or JSON (default: embedded catalog)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("state-dir", prefs.DefaultDir, "directory for persisted preferences")

	cmd.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newProgressCmd(a),
		newThemeCmd(a),
		newScanCmd(a),
		newServeCmd(a),
		newBrowseCmd(a),
		newSetupCmd(),
		newVersionCmd(),
	)
	return cmd
}

// init reads configuration and builds the logger. Logs go to stderr since
// stdout may carry the MCP stdio stream.
func (a *app) init(cmd *cobra.Command) error {
	a.v = newViper(a.configFile)
	root := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"state_dir":  "state-dir",
	} {
		if err := a.v.BindPFlag(key, root.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	cfg, err := loadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc := util.LoggerConfigFrom(cfg.Log.Level, cfg.Log.Format)
	lc.Output = os.Stderr
	a.logger = util.NewLogger(lc)
	util.SetDefault(a.logger)

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config loaded", "file", used)
	}
	return nil
}

func (a *app) catalogPath() string {
	return resolveCatalogPath(a.catalogFlag, a.cfg)
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	path := a.catalogPath()
	cat, err := loadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", catalogLabel(path), err)
	}
	a.logger.Debug("catalog loaded", "source", catalogLabel(path), "entries", cat.Len())
	return cat, nil
}

// newStore loads the catalog and builds a store whose theme is persisted
// under the state directory. A broken state directory only disables
// persistence.
func (a *app) newStore() (*store.Store, error) {
	cat, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	opts := store.Options{Logger: a.logger}
	if p, err := prefs.Open(a.cfg.StateDir); err != nil {
		a.logger.Warn("theme preference disabled", "state_dir", a.cfg.StateDir, "error", err)
	} else {
		opts.Themes = p
	}
	return store.New(cat, opts), nil
}
