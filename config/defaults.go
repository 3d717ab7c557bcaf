package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tracker/engine"
	"tracker/models"
)

// LoadSessionDefaults reads default session settings from a YAML file.
// Keys missing from the file keep the built-in defaults; an empty path
// returns the built-in defaults.
//
//	game_type: baccarat
//	series: B
//	start_mode: OPP
//	auto_series: false
//	carry_mode: true
func LoadSessionDefaults(path string) (models.SessionSettings, error) {
	settings := engine.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read session defaults %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse session defaults %s: %w", path, err)
	}
	if err := engine.ValidateSettings(settings); err != nil {
		return settings, fmt.Errorf("invalid session defaults %s: %w", path, err)
	}

	return settings, nil
}
