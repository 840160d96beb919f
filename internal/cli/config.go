package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/primetree/internal/server"
	"github.com/matzehuels/primetree/pkg/cache"
	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/layout"
	"github.com/matzehuels/primetree/pkg/pipeline"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/tree"
)

// Cache backends accepted in [cache] backend.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Environment overrides, applied after the config file.
const (
	envRedisAddr = "PRIMETREE_REDIS_ADDR"
	envListen    = "PRIMETREE_LISTEN"
)

// Config is the on-disk configuration. Flags override it per command.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Layout  LayoutConfig  `toml:"layout"`
	Tree    TreeConfig    `toml:"tree"`
	Display DisplayConfig `toml:"display"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type LayoutConfig struct {
	HMargin     float64 `toml:"h_margin"`
	VMargin     float64 `toml:"v_margin"`
	LeafSpacing float64 `toml:"leaf_spacing"`
}

type TreeConfig struct {
	Start    int    `toml:"start"`
	End      int    `toml:"end"`
	Policy   string `toml:"policy"`
	MaxNodes int    `toml:"max_nodes"`
}

type DisplayConfig struct {
	Nodes        string  `toml:"nodes"`
	Edges        string  `toml:"edges"`
	SymmetryLine bool    `toml:"symmetry_line"`
	NodeRadius   float64 `toml:"node_radius"`
}

type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
}

// DefaultConfig mirrors the pipeline defaults with a file cache.
func DefaultConfig() Config {
	lo := layout.DefaultOptions(layout.DefaultWidth, layout.DefaultHeight)
	return Config{
		Canvas: CanvasConfig{Width: lo.Width, Height: lo.Height},
		Layout: LayoutConfig{HMargin: lo.HMargin, VMargin: lo.VMargin, LeafSpacing: lo.LeafSpacing},
		Tree: TreeConfig{
			Start:    pipeline.DefaultStart,
			End:      pipeline.DefaultEnd,
			Policy:   pipeline.DefaultPolicy,
			MaxNodes: tree.DefaultMaxNodes,
		},
		Display: DisplayConfig{
			Nodes: string(render.NodeValue),
			Edges: string(render.EdgeLine),
		},
		Cache:  CacheConfig{Backend: backendFile, TTL: cache.DefaultTTL.String()},
		Server: ServerConfig{Listen: server.DefaultAddr},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error;
// unknown keys are.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err):
		cfg = DefaultConfig()
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, errors.New(errors.ErrCodeInvalidInput,
				"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Cache.RedisAddr = getEnv(envRedisAddr, c.Cache.RedisAddr)
	c.Server.Listen = getEnv(envListen, c.Server.Listen)
}

// Validate checks the settings that are not checked again downstream.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_addr or %s", envRedisAddr)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if _, err := tree.ParsePolicy(c.Tree.Policy); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses [cache] ttl. Empty means cache.DefaultTTL.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.DefaultTTL, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache ttl must be a positive duration, got %q", c.Cache.TTL)
	}
	return d, nil
}

// PipelineOptions returns the configured defaults for a pipeline run.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Start:        c.Tree.Start,
		End:          c.Tree.End,
		Policy:       c.Tree.Policy,
		MaxNodes:     c.Tree.MaxNodes,
		Width:        c.Canvas.Width,
		Height:       c.Canvas.Height,
		HMargin:      c.Layout.HMargin,
		VMargin:      c.Layout.VMargin,
		LeafSpacing:  c.Layout.LeafSpacing,
		Nodes:        c.Display.Nodes,
		Edges:        c.Display.Edges,
		SymmetryLine: c.Display.SymmetryLine,
		NodeRadius:   c.Display.NodeRadius,
	}
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// configPath returns the config file location using the XDG standard
// (~/.config/primetree/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.ConfigFile)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.Config.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
