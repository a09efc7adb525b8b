package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir, creating it if needed.
// Existing files are left untouched.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), abs)
	if err := InitializeFs(fs, logger); err != nil {
		return nil, err
	}

	return Load(abs)
}

// InitializeFs writes the default configuration to the root of fs.
func InitializeFs(fs afero.Fs, logger *log.Logger) error {
	exists, err := afero.Exists(fs, ConfigurationName)
	if err != nil {
		return err
	}
	if exists {
		logger.Printf("%s already exists, skipping\n", ConfigurationName)
		return nil
	}

	logger.Printf("Writing default %s\n", ConfigurationName)
	return afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600)
}
