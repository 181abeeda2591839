// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Provider string `mapstructure:"provider" yaml:"provider"`
	Model    string `mapstructure:"model" yaml:"model"`
	Report   struct {
		Sheet        string `mapstructure:"sheet" yaml:"sheet"`
		OutputSuffix string `mapstructure:"output_suffix" yaml:"output_suffix"`
	} `mapstructure:"report" yaml:"report"`
	Ollama struct {
		Host string `mapstructure:"host" yaml:"host"`
	} `mapstructure:"ollama" yaml:"ollama"`
	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
		Color  bool   `mapstructure:"color" yaml:"color"`
	} `mapstructure:"output" yaml:"output"`
}

// Load reads the configuration from ~/.trafficlens/config.yaml and
// environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())

	setDefaults(v)

	// Environment variable overrides
	v.SetEnvPrefix("TRAFFICLENS")
	v.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "anthropic")
	v.SetDefault("model", "")
	v.SetDefault("report.sheet", "")
	v.SetDefault("report.output_suffix", "_analyzed")
	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("output.color", true)
	v.SetDefault("output.format", "text")
}

// Dir returns the configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trafficlens"
	}
	return filepath.Join(home, ".trafficlens")
}

// Path returns the full path of the config file.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Init writes a starter config file with the current defaults. It refuses to
// overwrite an existing file.
func Init() (string, error) {
	path := Path()
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return "", fmt.Errorf("could not render config: %w", err)
	}

	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return "", fmt.Errorf("could not create %s: %w", Dir(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}
	return path, nil
}
