package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "webflow.yaml"

// Config is the project configuration read from webflow.yaml.
// JSON is accepted as well since it is valid YAML.
type Config struct {
	// Dir is the flow repository used when no Redis address is set.
	Dir      string `yaml:"dir" json:"dir"`
	LogLevel string `yaml:"log-level" json:"log-level"`
	// Strict rejects states that are unreachable from the start state.
	Strict bool   `yaml:"strict" json:"strict"`
	Redis  Redis  `yaml:"redis" json:"redis"`
	Server Server `yaml:"server" json:"server"`
}

type Redis struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Dir:      ".",
		LogLevel: "info",
		Server:   Server{Addr: ":8080"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults
// unless it was requested explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
