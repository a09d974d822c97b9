// Package config loads the YAML settings of the resonances command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/resonances/formalism"
	"github.com/katalvlaran/resonances/grid"
	"github.com/katalvlaran/resonances/parallel"
	"github.com/katalvlaran/resonances/reconstruct"
	"github.com/katalvlaran/resonances/resonance"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the reconstruction settings.
type Config struct {
	// Tolerance is the relative lin-lin tolerance of the refined grids;
	// 0 disables refinement.
	Tolerance float64 `yaml:"tolerance"`
	// MaxIterations bounds the refinement passes.
	MaxIterations int `yaml:"max_iterations"`
	// FailOnRefineLimit turns the refinement cap into an error.
	FailOnRefineLimit bool `yaml:"fail_on_refine_limit"`
	// Scheme shares widths among channel spins: NJOY, ENDF or ignore.
	Scheme resonance.Scheme `yaml:"scheme"`

	Parallel   ParallelConfig   `yaml:"parallel"`
	Angular    AngularConfig    `yaml:"angular"`
	Unresolved UnresolvedConfig `yaml:"unresolved"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ParallelConfig configures block evaluation of long grids.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"`
	Blocks    int `yaml:"blocks"`
}

// AngularConfig configures Legendre reconstruction.
type AngularConfig struct {
	// Enabled also writes angular distributions from the reconstruct
	// command.
	Enabled           bool     `yaml:"enabled"`
	Renormalize       bool     `yaml:"renormalize"`
	Reactions         []string `yaml:"reactions,omitempty"`
	ComputedRadius    bool     `yaml:"computed_radius"`
	ExtraCoulombPhase bool     `yaml:"extra_coulomb_phase"`
}

// UnresolvedConfig configures the unresolved region.
type UnresolvedConfig struct {
	InterpolateWidths bool `yaml:"interpolate_widths"`
}

// OutputConfig says where results go.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// PlotWidth and PlotHeight are the PNG size in centimeters.
	PlotWidth  float64 `yaml:"plot_width"`
	PlotHeight float64 `yaml:"plot_height"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tolerance:     grid.DefaultTolerance,
		MaxIterations: grid.DefaultMaxIterations,
		Scheme:        resonance.NJOY,
		Parallel: ParallelConfig{
			Threshold: parallel.DefaultThreshold,
			Blocks:    parallel.DefaultBlocks,
		},
		Angular: AngularConfig{Renormalize: true},
		Output: OutputConfig{
			Dir:        ".",
			PlotWidth:  16,
			PlotHeight: 10,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// RESONANCES_LOG_LEVEL and RESONANCES_OUTPUT_DIR override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("RESONANCES_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("RESONANCES_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Tolerance < 0 || c.Tolerance >= 1:
		return fmt.Errorf("%w: tolerance %g outside [0, 1)", ErrInvalid, c.Tolerance)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: max_iterations must be positive", ErrInvalid)
	case c.Parallel.Threshold < 0 || c.Parallel.Blocks < 1:
		return fmt.Errorf("%w: parallel threshold %d, blocks %d", ErrInvalid, c.Parallel.Threshold, c.Parallel.Blocks)
	case c.Output.PlotWidth <= 0 || c.Output.PlotHeight <= 0:
		return fmt.Errorf("%w: plot size must be positive", ErrInvalid)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Logging.Level)
}

// ReconstructOptions turns the configuration into driver options.
func (c *Config) ReconstructOptions(log *zap.Logger) reconstruct.Options {
	return reconstruct.Options{
		Tolerance: c.Tolerance,
		Refine: grid.RefineOptions{
			MaxIterations: c.MaxIterations,
			FailOnLimit:   c.FailOnRefineLimit,
		},
		Scheme:            c.Scheme,
		Parallel:          parallel.Options{Threshold: c.Parallel.Threshold, Blocks: c.Parallel.Blocks},
		InterpolateWidths: c.Unresolved.InterpolateWidths,
		Angular: formalism.AngularOptions{
			PhaseOptions: formalism.PhaseOptions{
				ComputedRadius:    c.Angular.ComputedRadius,
				ExtraCoulombPhase: c.Angular.ExtraCoulombPhase,
			},
			Renormalize: c.Angular.Renormalize,
			Reactions:   c.Angular.Reactions,
		},
		Logger: log,
	}
}
