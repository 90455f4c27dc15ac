package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("realtime.path", "/ws")
	viper.SetDefault("realtime.sweep_interval", "30s")
	viper.SetDefault("realtime.send_buffer", 64)
	viper.SetDefault("realtime.max_messages_per_second", 10)
	viper.SetDefault("realtime.applicants_cache_ttl", "10m")
}

func bindEnvironmentVariables() error {
	var errs []error

	server, db, logger, realtime := ServerConfig{}, DBConfig{}, LoggerConfig{}, RealtimeConfig{}

	if err := server.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := realtime.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("RealtimeConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Realtime.validate(); err != nil {
		errs = append(errs, fmt.Errorf("RealtimeConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
