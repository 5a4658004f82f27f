package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/lurelands/internal/server"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "LURELANDS"
)

// Config keys.
const (
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyListenAddr    = "listen_addr"
	cfgKeyIdleTimeout   = "idle_timeout"
	cfgKeySweepSchedule = "sweep_schedule"
	cfgKeyLogLevel      = "log_level"
	cfgKeyLogFormat     = "log_format"
)

// envKeys can be overridden by LURELANDS_<KEY>. data_dir is resolved by the
// paths package so that config.yaml keeps precedence over the environment.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyListenAddr,
	cfgKeyIdleTimeout,
	cfgKeySweepSchedule,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
}

// settings is the resolved configuration.
type settings struct {
	Backend       string
	DataDir       string
	ListenAddr    string
	IdleTimeout   time.Duration
	SweepSchedule string
	LogLevel      string
	LogFormat     string
}

// configFile is the shape init writes to config.yaml.
type configFile struct {
	Backend       string `yaml:"backend"`
	DataDir       string `yaml:"data_dir,omitempty"`
	ListenAddr    string `yaml:"listen_addr"`
	IdleTimeout   string `yaml:"idle_timeout"`
	SweepSchedule string `yaml:"sweep_schedule"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:       types.BackendSQLite,
		ListenAddr:    server.DefaultAddr,
		IdleTimeout:   server.DefaultIdleTimeout.String(),
		SweepSchedule: server.DefaultSweepSchedule,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// loadSettings reads config.yaml from configDir with Viper. A missing file
// yields the defaults.
func loadSettings(configDir string) (settings, error) {
	def := defaultConfigFile()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyListenAddr, def.ListenAddr)
	v.SetDefault(cfgKeyIdleTimeout, def.IdleTimeout)
	v.SetDefault(cfgKeySweepSchedule, def.SweepSchedule)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogFormat, def.LogFormat)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			return settings{}, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	return settings{
		Backend:       v.GetString(cfgKeyBackend),
		DataDir:       v.GetString(cfgKeyDataDir),
		ListenAddr:    v.GetString(cfgKeyListenAddr),
		IdleTimeout:   v.GetDuration(cfgKeyIdleTimeout),
		SweepSchedule: v.GetString(cfgKeySweepSchedule),
		LogLevel:      v.GetString(cfgKeyLogLevel),
		LogFormat:     v.GetString(cfgKeyLogFormat),
	}, nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone. It reports whether a file was written.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	cfg.DataDir = dataDir
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# Lurelands configuration. Environment variables LURELANDS_<KEY> override these.\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}

// newLogger builds the process logger. format is "text" or "json".
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: log_level %q", errUsage, level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: log_format %q", errUsage, format)
	}
}
