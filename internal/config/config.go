// Package config loads the configuration of the corelevels command.
//
// Values come, from lowest to highest precedence, from built-in defaults, an
// optional corelevels.yaml file, CORELEVELS_* environment variables and
// explicitly set command-line flags.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	chem "github.com/rmera/corelevels"
	"github.com/rmera/corelevels/corelevel"
	"github.com/rmera/corelevels/gradient"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of the environment variables read.
const EnvPrefix = "CORELEVELS_"

// Output formats.
const (
	OutputTable    = "table"
	OutputMarkdown = "markdown"
	OutputCSV      = "csv"
	OutputJSON     = "json"
)

// Defaults.
const (
	DefaultNeighbourTolerance = 1.5
	DefaultOutput             = OutputTable
	DefaultLogLevel           = "warn"
	DefaultPrecision          = 4
)

// Config holds the configuration of a run.
type Config struct {
	ChainTolerance        float64   `koanf:"chain_tolerance"`
	CoordinationTolerance float64   `koanf:"coordination_tolerance"`
	NeighbourTolerance    float64   `koanf:"neighbour_tolerance"`
	Bounds                []float64 `koanf:"bounds"`
	Columns               []string  `koanf:"columns"`
	Output                string    `koanf:"output"`
	Precision             int       `koanf:"precision"`
	LogLevel              string    `koanf:"log_level"`
	Verbose               bool      `koanf:"verbose"`
}

// loggerKey is used to store the logger in a context.
type loggerKey struct{}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// keys holding lists, which are comma-separated in environment variables.
var listKeys = map[string]bool{"bounds": true, "columns": true}

// findConfigFile returns the config file to use: the explicit path, or
// corelevels.yaml or corelevels.yml in the working directory, if they exist.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"corelevels.yaml", "corelevels.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// Default returns the configuration LoadConfig gives when there is no
// config file, environment variable or flag.
func Default() *Config {
	return &Config{
		ChainTolerance:        chem.DefaultChainTolerance,
		CoordinationTolerance: chem.DefaultCoordinationTolerance,
		NeighbourTolerance:    DefaultNeighbourTolerance,
		Output:                DefaultOutput,
		Precision:             DefaultPrecision,
		LogLevel:              DefaultLogLevel,
	}
}

// Defaults returns the default values of the configuration keys.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"chain_tolerance":        chem.DefaultChainTolerance,
		"coordination_tolerance": chem.DefaultCoordinationTolerance,
		"neighbour_tolerance":    DefaultNeighbourTolerance,
		"bounds":                 []float64{},
		"columns":                []string{},
		"output":                 DefaultOutput,
		"precision":              DefaultPrecision,
		"log_level":              DefaultLogLevel,
		"verbose":                false,
	}
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Flags are only used if they were explicitly set. Flag names are the keys
// with dashes instead of underscores.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment: CORELEVELS_CHAIN_TOLERANCE -> chain_tolerance
	var envErr error
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if !listKeys[key] {
			return key, value
		}
		items := splitList(value)
		if key != "bounds" {
			return key, items
		}
		b, err := parseFloats(items)
		if err != nil && envErr == nil {
			envErr = fmt.Errorf("%s%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
		return key, b
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	if envErr != nil {
		return nil, envErr
	}

	// 4. Flags
	var flagErr error
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if f.Value.Type() != "stringSlice" {
				return key, posflag.FlagVal(flags, f)
			}
			v, _ := flags.GetStringSlice(f.Name)
			if key != "bounds" {
				return key, v
			}
			b, err := parseFloats(v)
			if err != nil && flagErr == nil {
				flagErr = fmt.Errorf("--%s: %w", f.Name, err)
			}
			return key, b
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}
	if flagErr != nil {
		return nil, flagErr
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(s string) []string {
	ret := make([]string, 0, 3)
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

func parseFloats(items []string) ([]float64, error) {
	ret := make([]float64, 0, len(items))
	for _, v := range items {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	for name, tol := range map[string]float64{
		"chain_tolerance":        c.ChainTolerance,
		"coordination_tolerance": c.CoordinationTolerance,
		"neighbour_tolerance":    c.NeighbourTolerance,
	} {
		if err := chem.CheckTolerance(tol); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if c.NeighbourTolerance < c.ChainTolerance || c.NeighbourTolerance < c.CoordinationTolerance {
		return fmt.Errorf("neighbour_tolerance (%g) must not be smaller than the bonding tolerances", c.NeighbourTolerance)
	}
	if len(c.Bounds) > 0 {
		if _, err := gradient.NewBounds(c.Bounds...); err != nil {
			return fmt.Errorf("invalid bounds: %w", err)
		}
	}
	if _, err := c.ParsedColumns(); err != nil {
		return err
	}
	switch c.Output {
	case OutputTable, OutputMarkdown, OutputCSV, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q (table|markdown|csv|json)", c.Output)
	}
	if c.Precision < 0 || c.Precision > 12 {
		return fmt.Errorf("precision must be between 0 and 12, got %d", c.Precision)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParsedColumns returns the optional columns requested, in order.
func (c *Config) ParsedColumns() ([]corelevel.Column, error) {
	ret := make([]corelevel.Column, 0, len(c.Columns))
	seen := make(map[corelevel.Column]bool)
	for _, name := range c.Columns {
		col, err := corelevel.ParseColumn(name)
		if err != nil {
			return nil, err
		}
		if seen[col] {
			return nil, fmt.Errorf("column %q requested twice", name)
		}
		seen[col] = true
		ret = append(ret, col)
	}
	return ret, nil
}

// ColorBounds returns the configured color bounds, and false if none were set.
func (c *Config) ColorBounds() (gradient.Bounds, bool) {
	if len(c.Bounds) == 0 {
		return gradient.Bounds{}, false
	}
	b, err := gradient.NewBounds(c.Bounds...)
	if err != nil {
		return gradient.Bounds{}, false
	}
	return b, true
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// ParseLevel converts a level name (debug, info, warn or error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", name, err)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
