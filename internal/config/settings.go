package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultTitleWidth = 100

// Settings are optional per-project defaults read from tasks/config.yaml.
type Settings struct {
	TitleWidth     int  `yaml:"title_width"`
	AllowSuffix    bool `yaml:"allow_suffix"`
	StrictPriority bool `yaml:"strict_priority"`
	Workers        int  `yaml:"workers,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		TitleWidth:  DefaultTitleWidth,
		AllowSuffix: true,
	}
}

// LoadSettings reads the settings file for tasksDir. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadSettings(tasksDir string) (Settings, error) {
	out := DefaultSettings()
	path := ConfigFilePath(tasksDir)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, err
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid %s: %w", path, err)
	}
	if out.Workers < 0 {
		return DefaultSettings(), fmt.Errorf("invalid %s: workers must not be negative", path)
	}
	return out, nil
}
