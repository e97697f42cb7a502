// CUE schema validation and semantic checks for park configs
package config

import (
	"fmt"
	"math"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// DistributionTolerance is the allowed rounding slack when checking that the
// hourly distribution sums to 1.0.
const DistributionTolerance = 1e-6

// ValidateWithCue validates a YAML configuration file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	// Read YAML config
	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	configFileAST, err := yaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(configFileAST)

	// Read CUE schema
	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	// Merge values with schema
	final := configVal.Unify(schemaVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}

	// Validate final structure
	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate enforces the semantic constraints the CUE schema cannot express.
// It returns the first violation found.
func (c *ParkConfig) Validate() error {
	if c.BaseAttendance <= 0 {
		return fmt.Errorf("base_attendance must be positive, got %d", c.BaseAttendance)
	}
	if c.OperatingHours <= 0 {
		return fmt.Errorf("operating_hours must be positive, got %d", c.OperatingHours)
	}
	if c.OpenHour < 0 || c.OpenHour+c.OperatingHours > 24 {
		return fmt.Errorf("operating window %d:00+%dh does not fit a calendar day", c.OpenHour, c.OperatingHours)
	}
	if len(c.Multipliers.HourlyDistribution) != c.OperatingHours {
		return fmt.Errorf("hourly_distribution has %d entries, want %d", len(c.Multipliers.HourlyDistribution), c.OperatingHours)
	}
	var sum float64
	for i, share := range c.Multipliers.HourlyDistribution {
		if share < 0 {
			return fmt.Errorf("hourly_distribution[%d] is negative: %f", i, share)
		}
		sum += share
	}
	if math.Abs(sum-1.0) > DistributionTolerance {
		return fmt.Errorf("hourly_distribution sums to %f, want 1.0", sum)
	}
	if len(c.Rides) == 0 {
		return fmt.Errorf("no rides defined")
	}
	for _, ride := range c.Rides {
		if ride.ID == "" {
			return fmt.Errorf("ride with empty id")
		}
		if ride.AttractionRate < 0 || ride.AttractionRate > 1 {
			return fmt.Errorf("ride %s: attraction_rate %f outside [0,1]", ride.ID, ride.AttractionRate)
		}
		if ride.CapacityCap <= 0 {
			return fmt.Errorf("ride %s: capacity_cap must be positive, got %d", ride.ID, ride.CapacityCap)
		}
		if ride.FailureRate < 0 || ride.FailureRate > 1 {
			return fmt.Errorf("ride %s: failure_rate %f outside [0,1]", ride.ID, ride.FailureRate)
		}
	}
	return nil
}
