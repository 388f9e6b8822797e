package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/axiomfs/axiomfs"
)

// Config holds the settings of the axiomfs tool.
type Config struct {
	VolumeName string `mapstructure:"volume_name"`
	AutoFormat bool   `mapstructure:"auto_format"`
	LogLevel   string `mapstructure:"log_level"`
	TimeFormat string `mapstructure:"time_format"`
}

// loadConfig reads the configuration into v.
// If file is empty, axiomfs.yaml is searched in the working directory,
// $HOME/.axiomfs and /etc/axiomfs. A missing config file is fine in that case.
// Environment variables prefixed with AXIOMFS_ override the file.
func loadConfig(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("axiomfs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.axiomfs")
		v.AddConfigPath("/etc/axiomfs")
	}

	v.SetDefault("volume_name", axiomfs.DefaultVolumeName)
	v.SetDefault("auto_format", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("time_format", "2006-01-02 15:04:05")

	v.SetEnvPrefix("AXIOMFS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
