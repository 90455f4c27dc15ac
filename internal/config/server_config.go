package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (config ServerConfig) validate() error {

	var problems []string

	if config.Port <= 0 || config.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range", config.Port))
	}

	if config.Mode != "release" && config.Mode != "debug" && config.Mode != "test" {
		problems = append(problems, fmt.Sprintf("unknown mode %q", config.Mode))
	}

	if len(config.AllowedOrigins) == 0 {
		problems = append(problems, "allowed_origins is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid variables: %s", strings.Join(problems, ", "))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {
	var errs []error
	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("server.mode", "MODE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
