// Package config holds the tunable parameters of a profiling run.
//
// Every field is optional. Fields left out of a JSON file stay nil and the Get* methods
// fall back to the defaults, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/profile"
	"github.com/cxd309/speed-profile/internal/segment"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config is the root configuration object, accepted from a file and under "config" in
// the JSON entry point.
type Config struct {
	// Vehicle limits
	MaxAcceleration     *float64 `json:"max_acceleration,omitempty"`     // units/s²
	MaxDeceleration     *float64 `json:"max_deceleration,omitempty"`     // units/s², default max_acceleration
	LateralAcceleration *float64 `json:"lateral_acceleration,omitempty"` // units/s², default max_acceleration
	MaxSpeed            *float64 `json:"max_speed,omitempty"`            // units/s

	// Integration
	TimeStep *float64 `json:"time_step,omitempty"` // seconds

	// Segmentation
	CurvatureMetric  *string  `json:"curvature_metric,omitempty"` // "deflection" or "slope"
	CurvatureEpsilon *float64 `json:"curvature_epsilon,omitempty"`
	RadiusPrecision  *int     `json:"radius_precision,omitempty"` // decimal places, < 0 keeps full precision
	InsetDistance    *float64 `json:"inset_distance,omitempty"`   // 0 disables the inset path

	Workers *int `json:"workers,omitempty"`
}

// Helper functions to create pointers
func Float64(v float64) *float64 { return &v }
func Int(v int) *int             { return &v }
func String(v string) *string    { return &v }

// Load reads a Config from a JSON file.
// The file must have a .json extension and be under 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Merge copies every field set in other over c. A nil other is a no-op.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.MaxAcceleration != nil {
		c.MaxAcceleration = other.MaxAcceleration
	}
	if other.MaxDeceleration != nil {
		c.MaxDeceleration = other.MaxDeceleration
	}
	if other.LateralAcceleration != nil {
		c.LateralAcceleration = other.LateralAcceleration
	}
	if other.MaxSpeed != nil {
		c.MaxSpeed = other.MaxSpeed
	}
	if other.TimeStep != nil {
		c.TimeStep = other.TimeStep
	}
	if other.CurvatureMetric != nil {
		c.CurvatureMetric = other.CurvatureMetric
	}
	if other.CurvatureEpsilon != nil {
		c.CurvatureEpsilon = other.CurvatureEpsilon
	}
	if other.RadiusPrecision != nil {
		c.RadiusPrecision = other.RadiusPrecision
	}
	if other.InsetDistance != nil {
		c.InsetDistance = other.InsetDistance
	}
	if other.Workers != nil {
		c.Workers = other.Workers
	}
}

func positive(name string, v *float64) error {
	if v != nil && (!(*v > 0) || math.IsInf(*v, 0)) {
		return fmt.Errorf("%s must be positive and finite, got %v", name, *v)
	}
	return nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"max_acceleration", c.MaxAcceleration},
		{"max_deceleration", c.MaxDeceleration},
		{"lateral_acceleration", c.LateralAcceleration},
		{"max_speed", c.MaxSpeed},
		{"time_step", c.TimeStep},
	} {
		if err := positive(f.name, f.v); err != nil {
			return err
		}
	}

	if c.CurvatureMetric != nil {
		if err := (segment.Options{Metric: segment.Metric(*c.CurvatureMetric)}).Validate(); err != nil {
			return fmt.Errorf("curvature_metric: %w", err)
		}
	}
	if c.CurvatureEpsilon != nil && (*c.CurvatureEpsilon < 0 || math.IsNaN(*c.CurvatureEpsilon)) {
		return fmt.Errorf("curvature_epsilon must be non-negative, got %v", *c.CurvatureEpsilon)
	}
	if c.RadiusPrecision != nil && *c.RadiusPrecision > 12 {
		return fmt.Errorf("radius_precision must be at most 12, got %d", *c.RadiusPrecision)
	}
	if c.InsetDistance != nil && (math.IsNaN(*c.InsetDistance) || math.IsInf(*c.InsetDistance, 0)) {
		return fmt.Errorf("inset_distance must be finite, got %v", *c.InsetDistance)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	return nil
}

// GetMaxAcceleration returns the max_acceleration value or the default.
func (c *Config) GetMaxAcceleration() float64 {
	if c.MaxAcceleration == nil {
		return 15.0
	}
	return *c.MaxAcceleration
}

// GetMaxDeceleration returns the max_deceleration value, defaulting to the
// acceleration limit.
func (c *Config) GetMaxDeceleration() float64 {
	if c.MaxDeceleration == nil {
		return c.GetMaxAcceleration()
	}
	return *c.MaxDeceleration
}

// GetLateralAcceleration returns the lateral_acceleration value, defaulting to the
// acceleration limit.
func (c *Config) GetLateralAcceleration() float64 {
	if c.LateralAcceleration == nil {
		return c.GetMaxAcceleration()
	}
	return *c.LateralAcceleration
}

// GetMaxSpeed returns the max_speed value or the default.
func (c *Config) GetMaxSpeed() float64 {
	if c.MaxSpeed == nil {
		return 7.0
	}
	return *c.MaxSpeed
}

// GetTimeStep returns the time_step value or the default.
func (c *Config) GetTimeStep() float64 {
	if c.TimeStep == nil {
		return 0.01
	}
	return *c.TimeStep
}

// GetCurvatureMetric returns the curvature_metric value or the default.
func (c *Config) GetCurvatureMetric() string {
	if c.CurvatureMetric == nil || *c.CurvatureMetric == "" {
		return string(segment.MetricDeflection)
	}
	return *c.CurvatureMetric
}

// GetCurvatureEpsilon returns the curvature_epsilon value or the default.
func (c *Config) GetCurvatureEpsilon() float64 {
	if c.CurvatureEpsilon == nil {
		return 1e-9
	}
	return *c.CurvatureEpsilon
}

// GetRadiusPrecision returns the radius_precision value or the default.
func (c *Config) GetRadiusPrecision() int {
	if c.RadiusPrecision == nil {
		return 2
	}
	return *c.RadiusPrecision
}

// GetInsetDistance returns the inset_distance value or the default.
func (c *Config) GetInsetDistance() float64 {
	if c.InsetDistance == nil {
		return 0
	}
	return *c.InsetDistance
}

// GetWorkers returns the workers value or the default.
func (c *Config) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

// Model returns the constant-acceleration motion model described by c.
func (c *Config) Model() kinematics.ConstantAcceleration {
	return kinematics.ConstantAcceleration{
		AAcc:    c.GetMaxAcceleration(),
		ADcc:    c.GetMaxDeceleration(),
		ALat:    c.GetLateralAcceleration(),
		VMaxVal: c.GetMaxSpeed(),
	}
}

// SegmentOptions returns the segmentation options described by c.
func (c *Config) SegmentOptions() segment.Options {
	return segment.Options{
		Metric:          segment.Metric(c.GetCurvatureMetric()),
		Epsilon:         c.GetCurvatureEpsilon(),
		RadiusPrecision: c.GetRadiusPrecision(),
		Workers:         c.GetWorkers(),
	}
}

// ProfileOptions returns the speed-profile options described by c.
func (c *Config) ProfileOptions() profile.Options {
	return profile.Options{TimeStep: c.GetTimeStep(), Workers: c.GetWorkers()}
}
