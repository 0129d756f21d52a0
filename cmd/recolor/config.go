package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/setanarut/recolor"
	"github.com/setanarut/recolor/internal/prompt"
	"github.com/spf13/viper"
)

// DefaultConfigFileName is the config file name without extension.
const DefaultConfigFileName = "recolor"

// Config holds all recolor settings.
// Priority: CLI flags > env vars > config file > defaults
type Config struct {
	// Mode is "all" or "single".
	Mode string `mapstructure:"mode"`
	// Swatch writes a before/after palette strip next to each output.
	Swatch bool `mapstructure:"swatch"`
	// Labels overrides the brightest-to-darkest vocabulary.
	Labels  []string      `mapstructure:"labels"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "recolor"))
		}
		v.SetConfigName(DefaultConfigFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix("RECOLOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(prompt.ModeAll))
	v.SetDefault("swatch", false)
	v.SetDefault("labels", recolor.DefaultLabels)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// Validate checks values that flags and files cannot constrain.
func (c *Config) Validate() error {
	if _, err := prompt.ParseMode(c.Mode); err != nil {
		return err
	}
	for i, l := range c.Labels {
		if l == "" {
			return fmt.Errorf("labels[%d] is empty", i)
		}
	}
	return nil
}
