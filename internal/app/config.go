package app

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	ServerURL string    `yaml:"server_url"` // pufsimd base URL, e.g. http://127.0.0.1:8420
	Rand      io.Reader `yaml:"-"`          // randomness source; defaults to crypto/rand.Reader
}

// LoadConfig reads an optional YAML config file. A missing file yields
// a zero Config without error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
