package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPath is read when no file is named; it may be absent.
const defaultPath = "./config.yaml"

// Load reads the configuration. Priority: ENV > YAML > env-default tags.
//
// The YAML file is path when non-empty (the CLI's --config flag), else
// CONFIG_PATH, else ./config.yaml. A file named by path or CONFIG_PATH
// must exist; a missing ./config.yaml means ENV and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	path, explicit := resolvePath(path)

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func resolvePath(flag string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env, true
	}
	return defaultPath, false
}
