package config

import (
	"os"
	"path/filepath"

	"github.com/burntsushi/toml"
	"github.com/pkg/errors"
)

// DefaultURL is used until the user sets one
const DefaultURL = "http://localhost:5000"

// Config describes the configuration for the polaroids client
type Config struct {
	URL string `toml:"url"`
}

// DefaultPath is ~/.polaroids.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not find home directory")
	}
	return filepath.Join(home, ".polaroids.toml"), nil
}

// Load parses the client config file located at `path`, creating it with
// defaults if it does not exist
func Load(path string) (Config, error) {
	config := Config{URL: DefaultURL}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, Store(config, path)
		}
		return config, err
	}
	defer file.Close()

	_, err = toml.DecodeReader(file, &config)
	return config, errors.Wrapf(err, "could not parse %s", path)
}

// Store serialises the given config struct as TOML and stores it at `path`
func Store(config Config, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(config)
}
