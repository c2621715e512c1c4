// Package config defines the data structures related to configuration and
// includes functions for loading and converting the config into engine
// inputs.
package config

import (
	"fmt"
	"io"

	"github.com/oceanworks/fleet-roi/internal/roi"
	"github.com/oceanworks/fleet-roi/pkg/catalog"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fleet-roi.
type Configuration struct {
	Fleet         roi.FleetParameters `yaml:"fleet"`
	Applications  []ApplicationConfig `yaml:"applications,omitempty"`
	ThreeYearView bool                `yaml:"threeYearView,omitempty"`
	Logging       LoggingConfig       `yaml:"logging,omitempty"`
	Output        OutputConfig        `yaml:"output,omitempty"`
}

// ApplicationConfig selects one catalog application and its savings
// percentage. When any applications are listed, the list fully specifies the
// selection state: catalog applications not listed are unselected.
type ApplicationConfig struct {
	Name          string  `yaml:"name"`
	Selected      bool    `yaml:"selected"`
	SavingPercent float64 `yaml:"savingPercent"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// setDefaults registers the dashboard's default fleet parameters so a partial
// config still evaluates.
func setDefaults(v *viper.Viper) {
	v.SetDefault("fleet.fleetSize", 10)
	v.SetDefault("fleet.fuelPricePerTon", 550.0)
	v.SetDefault("fleet.dailyFuelConsumptionTons", 50.0)
	v.SetDefault("fleet.operatingDays", 330)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshal(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. a request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Selections converts the configured application list into engine selections.
// An empty list means the catalog defaults apply, mirroring the dashboard's
// initial state.
func (c *Configuration) Selections() roi.Selections {
	if len(c.Applications) == 0 {
		return roi.DefaultSelections()
	}

	selections := make(roi.Selections, len(catalog.Default()))
	for _, app := range catalog.Default() {
		selections[app.Name] = roi.Selection{}
	}
	for _, app := range c.Applications {
		selections[app.Name] = roi.Selection{
			Selected:      app.Selected,
			SavingPercent: app.SavingPercent,
		}
	}
	return selections
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard input errors are the engine boundary's concern
// (roi.ValidateInputs); warnings flag configurations that are legal but
// probably not intended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	seen := make(map[string]bool)
	for _, app := range c.Applications {
		if seen[app.Name] {
			warnings = append(warnings, fmt.Sprintf("Application '%s' is listed more than once; the last entry wins", app.Name))
		}
		seen[app.Name] = true

		if _, ok := catalog.Lookup(app.Name); !ok {
			warnings = append(warnings, fmt.Sprintf("Application '%s' is not in the catalog", app.Name))
			continue
		}

		if app.Selected && app.SavingPercent == 0 {
			warnings = append(warnings, fmt.Sprintf("Application '%s' is selected at 0%% saving and contributes nothing", app.Name))
		}
		if !app.Selected && app.SavingPercent != 0 {
			warnings = append(warnings, fmt.Sprintf("Application '%s' has a saving percent but is not selected; it will be ignored", app.Name))
		}
	}

	return warnings
}
