// YAML park configuration loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RideConfig defines the behavioral constants for one attraction.
type RideConfig struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Category       string  `yaml:"category"`
	AttractionRate float64 `yaml:"attraction_rate"`
	CapacityCap    int     `yaml:"capacity_cap"`
	FailureRate    float64 `yaml:"failure_rate"`
}

// Seasonal holds attendance multipliers per season bucket.
type Seasonal struct {
	Peak     float64 `yaml:"peak"`
	Shoulder float64 `yaml:"shoulder"`
	OffPeak  float64 `yaml:"off_peak"`
}

// DayOfWeek holds attendance multipliers for weekend days and weekdays.
type DayOfWeek struct {
	Saturday float64 `yaml:"saturday"`
	Sunday   float64 `yaml:"sunday"`
	Weekday  float64 `yaml:"weekday"`
}

// Multipliers groups the seasonal, day-of-week, and intraday attendance shape.
type Multipliers struct {
	Seasonal           Seasonal  `yaml:"seasonal"`
	DayOfWeek          DayOfWeek `yaml:"day_of_week"`
	HourlyDistribution []float64 `yaml:"hourly_distribution"`
}

// ParkConfig is the root configuration for one simulated park.
type ParkConfig struct {
	ParkName       string       `yaml:"park_name"`
	BaseAttendance int          `yaml:"base_attendance"`
	OpenHour       int          `yaml:"open_hour"`
	OperatingHours int          `yaml:"operating_hours"`
	Multipliers    Multipliers  `yaml:"multipliers"`
	Rides          []RideConfig `yaml:"rides"`
}

// Load loads the YAML park config, validates it against a CUE schema, and
// runs the semantic checks. A config failing either step never reaches a run.
func Load(configPath, cueSchemaPath string) (*ParkConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg ParkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal park config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
