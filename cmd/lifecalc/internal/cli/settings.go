package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the process-level defaults of lifecalc. Every field can be
// overridden by the flag of the same name.
type Settings struct {
	Table      string  `env:"LIFECALC_TABLE"`
	Basis      string  `env:"LIFECALC_BASIS"`
	Select     bool    `env:"LIFECALC_SELECT"`
	Radix      float64 `env:"LIFECALC_RADIX"`
	Pct        float64 `env:"LIFECALC_PCT"`
	Assumption string  `env:"LIFECALC_ASSUMPTION" envDefault:"UDD"`
	Workers    int     `env:"LIFECALC_WORKERS" envDefault:"4"`

	Environment string `env:"LIFECALC_ENV" envDefault:"production"`
	LogLevel    string `env:"LIFECALC_LOG_LEVEL"`
}

// ParseEnv populates target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
