package config

import (
	"fmt"

	"github.com/caarlos0/env"
)

// Environment holds the settings read from CALRENDER_* variables. Command
// line flags take precedence over them.
type Environment struct {
	ConfigPath     string `env:"CALRENDER_CONFIG" envDefault:"calendar.yaml"`
	LogLevel       string `env:"CALRENDER_LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"CALRENDER_LOG_FORMAT" envDefault:"text"`
	Addr           string `env:"CALRENDER_ADDR" envDefault:"localhost:8080"`
	CalDAVPassword string `env:"CALRENDER_CALDAV_PASSWORD"`
}

// LoadEnvironment parses the process environment.
func LoadEnvironment() (Environment, error) {
	var vars Environment
	if err := env.Parse(&vars); err != nil {
		return Environment{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return vars, nil
}
