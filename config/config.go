// Package config loads the dexasm settings from defaults, an optional YAML
// file, DEXASM_* environment variables and command-line flags, in rising
// order of precedence.
package config

import (
	"encoding/binary"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/dexasm/errors"
)

// Keys.
const (
	KeyByteOrder = "byte_order"
	KeyWorkers   = "workers"
	KeyLogLevel  = "log_level"
	KeyFormat    = "format"
	KeyMetrics   = "metrics"
)

const envPrefix = "dexasm"

// Config holds the effective settings.
type Config struct {
	ByteOrder string `mapstructure:"byte_order" yaml:"byte_order"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	Format    string `mapstructure:"format" yaml:"format"`
	Workers   int    `mapstructure:"workers" yaml:"workers"`
	Metrics   bool   `mapstructure:"metrics" yaml:"metrics"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ByteOrder: "little",
		LogLevel:  "warn",
		Format:    "hex",
		Workers:   runtime.NumCPU(),
	}
}

// FlagName returns the command-line flag bound to key, e.g. "byte-order".
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Load reads the settings. path may be empty. flags may be nil; otherwise
// every flag named after a key overrides the other sources when set.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyByteOrder, def.ByteOrder)
	v.SetDefault(KeyWorkers, def.Workers)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyFormat, def.Format)
	v.SetDefault(KeyMetrics, def.Metrics)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Cause(err).
				Value(path).
				Detail("cannot read %s", path).
				Build()
		}
	}

	if flags != nil {
		for _, key := range []string{KeyByteOrder, KeyWorkers, KeyLogLevel, KeyFormat, KeyMetrics} {
			if f := flags.Lookup(FlagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).Cause(err).Build()
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Cause(err).
			Detail("cannot decode settings").
			Build()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	switch c.ByteOrder {
	case "little", "big":
	default:
		return unsupported(KeyByteOrder, c.ByteOrder, "want little or big")
	}
	switch c.Format {
	case "hex", "binary":
	default:
		return unsupported(KeyFormat, c.Format, "want hex or binary")
	}
	if c.Workers < 1 {
		return invalid(KeyWorkers, c.Workers, "want at least 1")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return invalid(KeyLogLevel, c.LogLevel, "want debug, info, warn or error")
	}
	return nil
}

func invalid(key string, value any, want string) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Value(value).
		Detail("%s: invalid value %v, %s", key, value, want).
		Build()
}

func unsupported(key string, value any, want string) error {
	e := errors.Unsupported(errors.PhaseConfig, fmt.Sprintf("%s: %v is not supported, %s", key, value, want))
	e.Value = value
	return e
}

// Order returns the configured byte order.
func (c Config) Order() binary.ByteOrder {
	if c.ByteOrder == "big" {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Logger builds a console logger on stderr at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, invalid(KeyLogLevel, c.LogLevel, "want debug, info, warn or error")
	}
	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// WriteYAML writes the settings as YAML.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidData).Cause(err).Build()
	}
	return enc.Close()
}
