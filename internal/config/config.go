// Package config loads quest settings from defaults, a YAML file, QUEST_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/eternalquest/internal/store"
)

// EnvPrefix is stripped from environment variables before mapping them to keys.
const EnvPrefix = "QUEST_"

// Defaults.
const (
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultSnapshotKeep = 20
	DefaultLLMTimeout   = 30 * time.Second
)

// Config is the resolved application configuration.
type Config struct {
	GoalsFile    string    `koanf:"goals_file"`
	Database     string    `koanf:"database"`
	LogLevel     string    `koanf:"log_level"`
	LogFormat    string    `koanf:"log_format"`
	SnapshotKeep int       `koanf:"snapshot_keep"`
	LLM          LLMConfig `koanf:"llm"`

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string `koanf:"-"`
}

// LLMConfig selects and tunes the LLM provider used for goal suggestions.
// Empty fields fall back to the provider's own environment variables.
type LLMConfig struct {
	Provider string        `koanf:"provider"`
	Model    string        `koanf:"model"`
	APIKey   string        `koanf:"api_key"`
	Timeout  time.Duration `koanf:"timeout"`
}

// flagKeys maps flag names whose config key differs from the snake_case name.
var flagKeys = map[string]string{
	"file":     "goals_file",
	"db":       "database",
	"provider": "llm.provider",
	"model":    "llm.model",
}

// Load resolves configuration. cfgFile may be empty, in which case the
// default location is used if it exists. Only flags that were explicitly
// set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level":     DefaultLogLevel,
		"log_format":    DefaultLogFormat,
		"snapshot_keep": DefaultSnapshotKeep,
		"llm.timeout":   DefaultLLMTimeout.String(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	used := cfgFile
	if used == "" {
		if p, ok := defaultConfigFile(); ok {
			used = p
		}
	} else if _, err := os.Stat(used); err != nil {
		return nil, fmt.Errorf("config file %s: %w", used, err)
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", used, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = used

	if cfg.GoalsFile == "" {
		p, err := store.DataPath("goals.txt")
		if err != nil {
			return nil, fmt.Errorf("resolve goals file: %w", err)
		}
		cfg.GoalsFile = p
	}
	if cfg.SnapshotKeep < 1 {
		cfg.SnapshotKeep = DefaultSnapshotKeep
	}

	return &cfg, nil
}

// envKey maps QUEST_LLM_API_KEY to llm.api_key and QUEST_LOG_LEVEL to log_level.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "llm_"); ok {
		return "llm." + rest
	}
	if alias, ok := flagKeys[key]; ok {
		return alias
	}
	return key
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/eternalquest/config.yaml,
// falling back to ~/.config.
func DefaultConfigPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "eternalquest", "config.yaml"), nil
}

func defaultConfigFile() (string, bool) {
	p, err := DefaultConfigPath()
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}
