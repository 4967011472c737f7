// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning its deals into
// validated engine inputs.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/iwvelando/deal-viability/pkg/validation"
	"github.com/spf13/viper"
)

// ErrInvalidDeal is wrapped by every validation failure of a deal or rental case.
var ErrInvalidDeal = errors.New("invalid deal")

// Configuration holds all configuration for deal-viability.
type Configuration struct {
	Deals   []DealConfig   `yaml:"deals" json:"deals"`
	Rentals []RentalConfig `yaml:"rentals,omitempty" json:"rentals,omitempty"`
	Logging LoggingConfig  `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output  OutputConfig   `yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from a reader.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors surface from ToProjectInput instead.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Deals) == 0 && len(c.Rentals) == 0 {
		warnings = append(warnings, "Configuration declares no deals or rental cases")
	}

	seen := make(map[string]bool)
	for i, d := range c.Deals {
		name := d.DisplayName(i)
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Deal name '%s' is used more than once", name))
		}
		seen[name] = true

		switch {
		case d.Financing != nil && d.PaymentType == "financing":
			if d.Financing.Enabled != nil && !*d.Financing.Enabled {
				warnings = append(warnings, fmt.Sprintf("Deal '%s' declares financing but it is disabled - leverage will not be flagged", name))
			}
			if warning := validation.ValidateSaleTiming(name, d.OperationAndExit.ExpectedSaleMonths, d.Financing.TermMonths); warning != "" {
				warnings = append(warnings, warning)
			}
		case d.Installment != nil && d.PaymentType == "installment":
			if warning := validation.ValidateSaleTiming(name, d.OperationAndExit.ExpectedSaleMonths, d.Installment.Count); warning != "" {
				warnings = append(warnings, warning)
			}
		case d.PaymentType == "cash" && (d.Financing != nil || d.Installment != nil):
			warnings = append(warnings, fmt.Sprintf("Deal '%s' is paid in cash - financing and installment settings are ignored", name))
		}
	}

	return warnings
}
