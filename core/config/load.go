package config

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	out, err := loadFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
	if err != nil {
		return nil, err
	}
	out.dir = dir
	return out, nil
}

// LoadOrDefault loads the configuration from the directory, falling back to
// the defaults if the directory has no configuration.
func LoadOrDefault(path string) (*Configuration, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func loadFs(configFs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", ConfigurationName)
	}
	if err := out.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating %s", ConfigurationName)
	}
	out.configFs = configFs
	return &out, nil
}

// Initialize writes a default configuration to dir if one doesn't exist
// and creates the directories the shell writes to.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	logger.Printf("Initializing configuration in %s\n", dir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(err, "creating configuration directory")
	}

	cfg, err := initializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), logger)
	if err != nil {
		return nil, err
	}
	cfg.dir = dir
	return cfg, nil
}

func initializeFs(configFs afero.Fs, logger *log.Logger) (*Configuration, error) {
	exists, err := afero.Exists(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Printf("- %s already exists, leaving it alone\n", ConfigurationName)
	} else {
		logger.Printf("- Writing default %s\n", ConfigurationName)
		if err := afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, errors.Wrapf(err, "writing %s", ConfigurationName)
		}
	}

	logger.Printf("- Creating %s/\n", LogsDirName)
	if err := configFs.MkdirAll(LogsDirName, 0700); err != nil {
		return nil, errors.Wrapf(err, "creating %s", LogsDirName)
	}

	return loadFs(configFs)
}
