package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GlobalConfigPath returns ~/.cadupdate/config.json.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".cadupdate", "config.json"), nil
}
