// Package config loads the TOML configuration: detection thresholds, the
// calibration store backend, the capture source and the driver interval.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"blockassist/internal/extract"
	"blockassist/internal/locator"
	"blockassist/internal/solver"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Capture sources.
const (
	SourceFile   = "file"
	SourceDevice = "device"
)

// Config is the full application configuration.
type Config struct {
	Locator   LocatorConfig   `toml:"locator"`
	Extractor ExtractorConfig `toml:"extractor"`
	Solver    SolverConfig    `toml:"solver"`
	Driver    DriverConfig    `toml:"driver"`
	Store     StoreConfig     `toml:"store"`
	Capture   CaptureConfig   `toml:"capture"`
	Server    ServerConfig    `toml:"server"`
}

// LocatorConfig mirrors locator.Params.
type LocatorConfig struct {
	MaxWidth        int       `toml:"max_width"`
	SideFractions   []float64 `toml:"side_fractions"`
	MinSideFraction float64   `toml:"min_side_fraction"`
	MaxSideFraction float64   `toml:"max_side_fraction"`
	StepDivisor     int       `toml:"step_divisor"`
	MinStep         int       `toml:"min_step"`
	ScoreThreshold  float64   `toml:"score_threshold"`
}

// ExtractorConfig mirrors extract.Params.
type ExtractorConfig struct {
	BrightnessThreshold float64 `toml:"brightness_threshold"`
	SampleRadius        int     `toml:"sample_radius"`
	SampleSpacing       int     `toml:"sample_spacing"`
	MinSide             int     `toml:"min_side"`
}

// SolverConfig configures the placement search.
type SolverConfig struct {
	Pieces int `toml:"pieces"`
}

// DriverConfig configures the periodic driver.
type DriverConfig struct {
	IntervalMS int `toml:"interval_ms"`
}

// StoreConfig selects and configures the calibration store.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Path            string `toml:"path"`
	RedisAddr       string `toml:"redis_addr"`
	RedisKey        string `toml:"redis_key"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CaptureConfig selects the screenshot source.
type CaptureConfig struct {
	Source   string `toml:"source"`
	Path     string `toml:"path"`
	DeviceID int    `toml:"device_id"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	lp := locator.DefaultParams()
	ep := extract.DefaultParams()
	return Config{
		Locator: LocatorConfig{
			MaxWidth:        lp.MaxWidth,
			SideFractions:   lp.SideFractions,
			MinSideFraction: lp.MinSideFraction,
			MaxSideFraction: lp.MaxSideFraction,
			StepDivisor:     lp.StepDivisor,
			MinStep:         lp.MinStep,
			ScoreThreshold:  lp.ScoreThreshold,
		},
		Extractor: ExtractorConfig{
			BrightnessThreshold: ep.BrightnessThreshold,
			SampleRadius:        ep.SampleRadius,
			SampleSpacing:       ep.SampleSpacing,
			MinSide:             ep.MinSide,
		},
		Solver: SolverConfig{Pieces: solver.DefaultPieces},
		Driver: DriverConfig{IntervalMS: 1000},
		Store: StoreConfig{
			Backend:         BackendFile,
			RedisAddr:       "localhost:6379",
			MongoDatabase:   "blockassist",
			MongoCollection: "calibration",
		},
		Capture: CaptureConfig{Source: SourceFile},
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns ~/.config/blockassist/config.toml.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "blockassist", "config.toml")
}

// Load reads path over the defaults. An empty path means DefaultPath, which
// may be absent; an explicitly named file must exist. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Locator.MaxWidth <= 0 {
		errs = append(errs, errors.New("locator.max_width must be positive"))
	}
	if len(c.Locator.SideFractions) == 0 {
		errs = append(errs, errors.New("locator.side_fractions must not be empty"))
	}
	if c.Locator.ScoreThreshold < 0 {
		errs = append(errs, errors.New("locator.score_threshold must not be negative"))
	}
	if c.Extractor.BrightnessThreshold <= 0 || c.Extractor.BrightnessThreshold > 255 {
		errs = append(errs, errors.New("extractor.brightness_threshold must be in (0, 255]"))
	}
	if c.Extractor.SampleRadius < 0 || c.Extractor.SampleSpacing < 0 {
		errs = append(errs, errors.New("extractor sampling values must not be negative"))
	}
	if c.Solver.Pieces < 0 {
		errs = append(errs, errors.New("solver.pieces must not be negative"))
	}
	if c.Driver.IntervalMS <= 0 {
		errs = append(errs, errors.New("driver.interval_ms must be positive"))
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown store.backend %q", c.Store.Backend))
	}
	switch c.Capture.Source {
	case SourceFile, SourceDevice:
	default:
		errs = append(errs, fmt.Errorf("unknown capture.source %q", c.Capture.Source))
	}
	return errors.Join(errs...)
}

// LocatorParams converts the locator section.
func (c Config) LocatorParams() locator.Params {
	l := c.Locator
	return locator.Params{
		MaxWidth:        l.MaxWidth,
		SideFractions:   append([]float64(nil), l.SideFractions...),
		MinSideFraction: l.MinSideFraction,
		MaxSideFraction: l.MaxSideFraction,
		StepDivisor:     l.StepDivisor,
		MinStep:         l.MinStep,
		ScoreThreshold:  l.ScoreThreshold,
	}
}

// ExtractorParams converts the extractor section.
func (c Config) ExtractorParams() extract.Params {
	e := c.Extractor
	return extract.Params{
		BrightnessThreshold: e.BrightnessThreshold,
		SampleRadius:        e.SampleRadius,
		SampleSpacing:       e.SampleSpacing,
		MinSide:             e.MinSide,
	}
}

// Interval returns the driver tick interval.
func (c Config) Interval() time.Duration {
	return time.Duration(c.Driver.IntervalMS) * time.Millisecond
}
