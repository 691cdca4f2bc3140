package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "oledmon.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/oledmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment overrides (OLEDMON_PROBE_METHOD=tcp).
	EnvPrefix = "OLEDMON"
)

// envKeyReplacer maps nested keys to env names: display.driver -> OLEDMON_DISPLAY_DRIVER.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Create "+ConfigFileName+" or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. oledmon.yaml in current directory
// 3. ~/.config/oledmon/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not found.
// Environment overrides apply in both cases.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return parseConfig(viper.New(), "")
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Viper decodes duration strings ("3s") into time.Duration fields via its default hooks.
	if err := v.Unmarshal(cfg); err != nil {
		where := path
		if where == "" {
			where = "the environment"
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	return cfg, nil
}

// setDefaults registers every key so env overrides are visible to Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)
	v.SetDefault("hosts", cfg.Hosts)
	v.SetDefault("display.driver", cfg.Display.Driver)
	v.SetDefault("display.bus", cfg.Display.Bus)
	v.SetDefault("display.width", cfg.Display.Width)
	v.SetDefault("display.height", cfg.Display.Height)
	v.SetDefault("display.rotated", cfg.Display.Rotated)
	v.SetDefault("display.font", cfg.Display.Font)
	v.SetDefault("probe.method", cfg.Probe.Method)
	v.SetDefault("probe.timeout", cfg.Probe.Timeout)
	v.SetDefault("probe.privileged", cfg.Probe.Privileged)
	v.SetDefault("probe.port", cfg.Probe.Port)
	v.SetDefault("monitor.round_interval", cfg.Monitor.RoundInterval)
	v.SetDefault("monitor.stop_timeout", cfg.Monitor.StopTimeout)
	v.SetDefault("monitor.warmup", cfg.Monitor.Warmup)
	v.SetDefault("dashboard.switch_interval", cfg.Dashboard.SwitchInterval)
	v.SetDefault("dashboard.refresh_interval", cfg.Dashboard.RefreshInterval)
	v.SetDefault("log.level", cfg.Log.Level)
}

// Marshal renders the config as YAML, used by 'oledmon config'.
// Durations are written in their string form so the output can be loaded back.
func Marshal(cfg *Config) ([]byte, error) {
	doc := map[string]any{
		"version": cfg.Version,
		"hosts":   cfg.Hosts,
		"display": cfg.Display,
		"probe": map[string]any{
			"method":     cfg.Probe.Method,
			"timeout":    cfg.Probe.Timeout.String(),
			"privileged": cfg.Probe.Privileged,
			"port":       cfg.Probe.Port,
		},
		"monitor": map[string]any{
			"round_interval": cfg.Monitor.RoundInterval.String(),
			"stop_timeout":   cfg.Monitor.StopTimeout.String(),
			"warmup":         cfg.Monitor.Warmup.String(),
		},
		"dashboard": map[string]any{
			"switch_interval":  cfg.Dashboard.SwitchInterval.String(),
			"refresh_interval": cfg.Dashboard.RefreshInterval.String(),
		},
		"log": cfg.Log,
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot render config as YAML",
			"This is a bug; please report it")
	}
	return out, nil
}
