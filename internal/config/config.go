// Package config defines the CLI configuration and loads it with viper from a
// YAML file and BOILER_-prefixed environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/iwvelando/boiler-optimizer/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for boiler-optimizer.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Client  ClientConfig  `yaml:"client,omitempty"`
	Charts  ChartsConfig  `yaml:"charts,omitempty"`
	Inputs  InputsConfig  `yaml:"inputs,omitempty"`
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

// ClientConfig selects the optimizer. An empty endpoint runs the
// optimization in-process.
type ClientConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"` // duration, 0 disables
}

// ChartsConfig controls where rendered plot specs are written.
type ChartsConfig struct {
	Directory string `yaml:"directory,omitempty"`
}

// InputsConfig holds the raw form values used when no flag overrides them.
type InputsConfig struct {
	FeedwaterTemp string `yaml:"feedwaterTemp,omitempty"`
	SteamPressure string `yaml:"steamPressure,omitempty"`
	FuelFlow      string `yaml:"fuelFlow,omitempty"`
	Efficiency    string `yaml:"efficiency,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("client.endpoint", "")
	v.SetDefault("client.timeout", "0")
	v.SetDefault("charts.directory", "")
	v.SetDefault("inputs.feedwaterTemp", formatDefault(constants.DefaultFeedwaterTemp))
	v.SetDefault("inputs.steamPressure", formatDefault(constants.DefaultSteamPressure))
	v.SetDefault("inputs.fuelFlow", formatDefault(constants.DefaultFuelFlow))
	v.SetDefault("inputs.efficiency", formatDefault(constants.DefaultEfficiency))
}

func formatDefault(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path loads defaults and environment overrides
// only.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ClientTimeout parses the client timeout; zero means no timeout.
func (c *Configuration) ClientTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Client.Timeout)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid client timeout %q: %w", c.Client.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid client timeout %q: must not be negative", c.Client.Timeout)
	}
	return d, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are usable but suspicious.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return nil, err
	}
	if _, err := c.ClientTimeout(); err != nil {
		return nil, err
	}

	var warnings []string
	endpoint := strings.TrimSpace(c.Client.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		warnings = append(warnings, fmt.Sprintf("client endpoint %q has no http(s) scheme", endpoint))
	}

	raw := map[string]string{
		validation.FieldFeedwaterTemp: c.Inputs.FeedwaterTemp,
		validation.FieldSteamPressure: c.Inputs.SteamPressure,
		validation.FieldFuelFlow:      c.Inputs.FuelFlow,
		validation.FieldEfficiency:    c.Inputs.Efficiency,
	}
	for _, field := range validation.Fields {
		if _, err := validation.ParseNumber(field, raw[field]); err != nil {
			warnings = append(warnings, fmt.Sprintf("default input %s=%q is not a number", field, raw[field]))
		}
	}
	return warnings, nil
}
