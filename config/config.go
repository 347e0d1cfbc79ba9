// config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SourceConfig struct {
	Tag string `yaml:"tag"`
	CSV string `yaml:"csv"`
}

type PathsConfig struct {
	GazetteerCSV string `yaml:"gazetteer_csv"`
	OutputJS     string `yaml:"output_js"`
}

type Config struct {
	Paths   PathsConfig    `yaml:"paths"`
	Sources []SourceConfig `yaml:"sources"`
}

var AppConfig Config

// LoadConfig reads configuration from a yaml file, probing the standard
// locations when no path is given, then applies environment overrides
// (DEALFEED_GAZETTEER, DEALFEED_OUTPUT).
func LoadConfig(configPath string) error {
	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
			"../config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			return fmt.Errorf("config.yaml not found in standard locations")
		}
		fmt.Printf("Loading configuration from: %s\n", configPath)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if v := os.Getenv("DEALFEED_GAZETTEER"); v != "" {
		AppConfig.Paths.GazetteerCSV = v
	}
	if v := os.Getenv("DEALFEED_OUTPUT"); v != "" {
		AppConfig.Paths.OutputJS = v
	}

	if AppConfig.Paths.GazetteerCSV == "" {
		return fmt.Errorf("gazetteer_csv is not configured")
	}
	if AppConfig.Paths.OutputJS == "" {
		AppConfig.Paths.OutputJS = "all_flights_output.js"
	}
	if len(AppConfig.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	return nil
}
