package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

const serverKey = "showcase"

// agentDef describes how to find and configure one MCP client.
type agentDef struct {
	ID          string
	DisplayName string
	Method      string   // "cli" or "file"
	Binary      string   // cli: binary on PATH
	DirMarkers  []string // file: directories that mark a project-level client
	ConfigPath  func() string
	ServersKey  string            // "servers" (VS Code) or "mcpServers"
	ExtraFields map[string]string // merged into the server entry
}

type detectedAgent struct {
	Def            agentDef
	AlreadySetup   bool
	ResolvedConfig string
}

type setupOptions struct {
	auto bool
	args []string // arguments after "showcase", e.g. serve --catalog x
}

// Replaceable in tests.
var (
	lookPathFunc = exec.LookPath
	statFunc     = os.Stat
	runCLIFunc   = func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

var agentRegistry = []agentDef{
	{ID: "claude_code", DisplayName: "Claude Code", Method: "cli", Binary: "claude"},
	{
		ID: "vscode", DisplayName: "VS Code",
		Method: "file", DirMarkers: []string{".vscode"},
		ConfigPath:  func() string { return filepath.Join(".vscode", "mcp.json") },
		ServersKey:  "servers",
		ExtraFields: map[string]string{"type": "stdio"},
	},
	{
		ID: "cursor", DisplayName: "Cursor",
		Method: "file", DirMarkers: []string{".cursor"},
		ConfigPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		ServersKey: "mcpServers",
	},
	{
		ID: "claude_desktop", DisplayName: "Claude Desktop",
		Method: "file", ConfigPath: claudeDesktopConfigPath,
		ServersKey: "mcpServers",
	},
}

func newSetupCmd() *cobra.Command {
	var opts setupOptions
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the showcase MCP server with detected MCP clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.args = []string{"serve"}
			if catalogPath != "" {
				abs, err := filepath.Abs(catalogPath)
				if err != nil {
					return err
				}
				opts.args = append(opts.args, "--catalog", abs)
			}
			executeSetup(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.auto, "auto", false, "configure every detected client without prompting")
	cmd.Flags().StringVar(&catalogPath, "serve-catalog", "", "catalog file the registered server should load")
	return cmd
}

func claudeDesktopConfigPath() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	}
	home, _ := homedir.Dir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	}
	return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
}

// locate returns the config file to edit when the client is present.
// Project clients are present when one of their marker directories exists;
// clients without markers when their config directory does.
func (def agentDef) locate() (string, bool) {
	if len(def.DirMarkers) == 0 {
		path := def.ConfigPath()
		_, err := statFunc(filepath.Dir(path))
		return path, err == nil
	}
	for _, marker := range def.DirMarkers {
		if _, err := statFunc(marker); err == nil {
			return def.ConfigPath(), true
		}
	}
	return "", false
}

func detectAgents() []detectedAgent {
	var detected []detectedAgent
	for _, def := range agentRegistry {
		d := detectedAgent{Def: def}
		switch def.Method {
		case "cli":
			if _, err := lookPathFunc(def.Binary); err != nil {
				continue
			}
			cfg, _ := readMCPConfig(".mcp.json")
			d.AlreadySetup = cfg.has("mcpServers")
		case "file":
			path, ok := def.locate()
			if !ok {
				continue
			}
			cfg, _ := readMCPConfig(path)
			d.ResolvedConfig = path
			d.AlreadySetup = cfg.has(def.ServersKey)
		default:
			continue
		}
		detected = append(detected, d)
	}
	return detected
}

// mcpConfig is a client's JSON config file. Unknown keys survive a
// read/encode round trip.
type mcpConfig map[string]any

func parseMCPConfig(data []byte) (mcpConfig, error) {
	cfg := mcpConfig{}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

// readMCPConfig treats a missing file as an empty config.
func readMCPConfig(path string) (mcpConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseMCPConfig(data)
}

func (c mcpConfig) servers(key string) map[string]any {
	servers, _ := c[key].(map[string]any)
	return servers
}

func (c mcpConfig) has(key string) bool {
	_, ok := c.servers(key)[serverKey]
	return ok
}

// add registers the showcase server under key. It reports false when an
// entry already exists.
func (c mcpConfig) add(key string, args []string, extra map[string]string) bool {
	if c.has(key) {
		return false
	}
	servers := c.servers(key)
	if servers == nil {
		servers = map[string]any{}
		c[key] = servers
	}
	entry := map[string]any{"command": "showcase", "args": args}
	for k, v := range extra {
		entry[k] = v
	}
	servers[serverKey] = entry
	return true
}

func (c mcpConfig) encode() ([]byte, error) {
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// mergeServerEntry adds a showcase entry under serversKey in the existing
// JSON config. It returns nil, nil when the entry is already present.
func mergeServerEntry(existing []byte, serversKey string, args []string, extra map[string]string) ([]byte, error) {
	cfg, err := parseMCPConfig(existing)
	if err != nil {
		return nil, err
	}
	if !cfg.add(serversKey, args, extra) {
		return nil, nil
	}
	return cfg.encode()
}

func configureFileAgent(def agentDef, configPath string, args []string) error {
	cfg, err := readMCPConfig(configPath)
	if err != nil {
		return err
	}
	if !cfg.add(def.ServersKey, args, def.ExtraFields) {
		return nil
	}
	out, err := cfg.encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(configPath, out, 0o644)
}

func configureCLIAgent(def agentDef, args []string) error {
	cliArgs := append([]string{"mcp", "add", "--scope", "project", serverKey, "--", "showcase"}, args...)
	return runCLIFunc(def.Binary, cliArgs...)
}

// promptYesNo reads Y/n from r. Empty input and EOF mean yes.
func promptYesNo(r *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s ", question)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return true
	}
	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "" || answer == "y" || answer == "yes"
}

func executeSetup(in io.Reader, w io.Writer, opts setupOptions) {
	detected := detectAgents()
	if len(detected) == 0 {
		fmt.Fprintln(w, "No supported MCP clients detected.")
		return
	}

	fmt.Fprintln(w, "Detected MCP clients:")
	for _, d := range detected {
		suffix := ""
		if d.AlreadySetup {
			suffix = " (already configured)"
		}
		fmt.Fprintf(w, "  * %s%s\n", d.Def.DisplayName, suffix)
	}
	fmt.Fprintln(w)

	r := bufio.NewReader(in)
	if !opts.auto && !promptYesNo(r, w, "Configure clients? [Y/n]") {
		return
	}

	for _, d := range detected {
		if d.AlreadySetup {
			fmt.Fprintf(w, "%s: already configured, skipping\n", d.Def.DisplayName)
			continue
		}
		configureOne(r, w, d, opts)
	}
}

func configureOne(r *bufio.Reader, w io.Writer, d detectedAgent, opts setupOptions) {
	target := d.ResolvedConfig
	if d.Def.Method == "cli" {
		target = d.Def.Binary + " mcp add"
	}
	if !opts.auto && !promptYesNo(r, w, fmt.Sprintf("%s: add to %s? [Y/n]", d.Def.DisplayName, target)) {
		fmt.Fprintln(w, "  skipped")
		return
	}

	var err error
	if d.Def.Method == "cli" {
		err = configureCLIAgent(d.Def, opts.args)
	} else {
		err = configureFileAgent(d.Def, d.ResolvedConfig, opts.args)
	}
	if err != nil {
		fmt.Fprintf(w, "  ! %s: failed: %v\n", d.Def.DisplayName, err)
		return
	}
	fmt.Fprintf(w, "  + %s configured (%s)\n", d.Def.DisplayName, target)
}
