// Package config holds the process settings that are not part of a request:
// log verbosity and log destination, read from ASTEXTRACTOR_* environment
// variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const EnvPrefix = "ASTEXTRACTOR"

type Settings struct {
	// Verbosity is handed to commonlog; 0 keeps the tool quiet.
	Verbosity int    `mapstructure:"verbosity"`
	LogFile   string `mapstructure:"log_file"`
}

func Load() (*Settings, error) {
	v := viper.New()
	v.SetDefault("verbosity", 0)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &s, nil
}

// ConfigureLogging points commonlog at stderr, or at the log file when one
// is set.
func (s *Settings) ConfigureLogging() {
	var path *string
	if s.LogFile != "" {
		path = &s.LogFile
	}
	commonlog.Configure(s.Verbosity, path)
}
