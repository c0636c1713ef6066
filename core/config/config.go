package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "session_logs"
	EventLogName      = "events.log"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs
	// dir is the absolute path of the directory backing configFs.
	dir string

	Prompt         string `json:"prompt" validate:"required"`
	Banner         bool   `json:"banner"`
	Color          string `json:"color" validate:"oneof=always auto never"`
	HistoryFile    string `json:"history_file" validate:"omitempty,excludes=/"`
	RecordSessions bool   `json:"record_sessions"`
	EventLog       bool   `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// Dir returns the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.dir
}

// CreateSessionLog creates a session recording with the given name.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	toCreate := filepath.Join(LogsDirName, name)
	return c.fs().Create(toCreate)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_RDONLY, 0600)
}

// HistoryPath returns the path of the line editing history file on the host,
// or the empty string if history is disabled.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" || c.dir == "" {
		return ""
	}
	return filepath.Join(c.dir, c.HistoryFile)
}

// Default returns the built in configuration, it isn't backed by a directory
// so nothing can be written through it.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewReadOnlyFs(afero.NewMemMapFs())
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
