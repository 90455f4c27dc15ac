package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type RealtimeConfig struct {
	Path                 string        `mapstructure:"path"`
	SweepInterval        time.Duration `mapstructure:"sweep_interval"`
	SendBuffer           int           `mapstructure:"send_buffer"`
	MaxMessagesPerSecond float32       `mapstructure:"max_messages_per_second"`
	ApplicantsCacheTTL   time.Duration `mapstructure:"applicants_cache_ttl"`
}

func (config RealtimeConfig) validate() error {
	var errs []error

	if !strings.HasPrefix(config.Path, "/") {
		errs = append(errs, fmt.Errorf("path must start with '/': %q", config.Path))
	}
	if config.SweepInterval < time.Second {
		errs = append(errs, fmt.Errorf("sweep_interval must be at least 1s, got %v", config.SweepInterval))
	}
	if config.SendBuffer <= 0 {
		errs = append(errs, errors.New("send_buffer must be greater than zero"))
	}
	if config.MaxMessagesPerSecond <= 0 {
		errs = append(errs, errors.New("max_messages_per_second must be greater than zero"))
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}

func (config RealtimeConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("realtime.sweep_interval", "SWEEP_INTERVAL")
	if err != nil {
		return err
	}

	err = viper.BindEnv("realtime.max_messages_per_second", "WS_MAX_MESSAGES_PER_SECOND")
	if err != nil {
		return err
	}

	return viper.BindEnv("realtime.path", "WS_PATH")
}
