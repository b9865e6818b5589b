package config

import (
	"log/slog"
	"os"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Shifts holds the service shift and time zone configuration
type Shifts struct {
	Path     string
	Timezone string
}

// Flags returns CLI flags for Shifts configuration
func (s *Shifts) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "shifts-file",
			Usage:       "YAML file with the daily service shifts (built-in shifts when omitted)",
			Category:    "Shifts",
			Sources:     cli.EnvVars("QUEUEPULSE_SHIFTS_FILE"),
			Destination: &s.Path,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA time zone for shift boundaries, calendar days and query times (overrides the shifts file)",
			Category:    "Shifts",
			Sources:     cli.EnvVars("QUEUEPULSE_TIMEZONE"),
			Destination: &s.Timezone,
		},
	}
}

// Configure loads the shifts file, or the built-in shifts, and applies the time zone override
func (s *Shifts) Configure() (*model.ShiftsConfig, error) {
	cfg := model.DefaultShiftsConfig()
	if s.Path != "" {
		loaded, err := LoadShiftsFromFile(s.Path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if s.Timezone != "" {
		cfg.Timezone = s.Timezone
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid shifts configuration",
			goerr.V("path", s.Path),
			goerr.V("timezone", s.Timezone))
	}

	return cfg, nil
}

// LoadShiftsFromFile loads shift windows from YAML file
func LoadShiftsFromFile(path string) (*model.ShiftsConfig, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	// Parse YAML
	var config model.ShiftsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}

	return &config, nil
}

// LogValue returns structured log value
func (s Shifts) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", s.Path),
		slog.String("timezone", s.Timezone),
	)
}
