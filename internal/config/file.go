package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

// fileConfig is the YAML overlay. Only team-level settings live here; secrets stay in the
// environment.
type fileConfig struct {
	Team         string              `yaml:"team"`
	Rival        string              `yaml:"rival"`
	Competitions []games.Competition `yaml:"competitions"`
	Subreddit    string              `yaml:"subreddit"`
	Timezone     string              `yaml:"timezone"`
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, fmt.Errorf("config file %s not found", path)
		}
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}
