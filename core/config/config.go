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
	EventLogName      = "events.log"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	Prompt       string `json:"prompt" validate:"required"`
	Color        string `json:"color" validate:"oneof=always auto never"`
	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`
	EventLog     bool   `json:"event_log"`
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
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from, it's empty
// for in-memory configurations.
func (c *Configuration) Dir() string {
	return c.configDir
}

// HistoryPath returns the path to the readline history file on the host, or
// an empty string if history shouldn't be persisted.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" || c.configDir == "" {
		return ""
	}
	return c.resolve(c.HistoryFile)
}

func (c *Configuration) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.configDir, name)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_RDONLY, 0600)
}

func parseConfig(data []byte) (*Configuration, error) {
	var out Configuration
	if err := yaml.UnmarshalStrict(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func defaultConfig() *Configuration {
	out, err := parseConfig(defaultConfigData)
	if err != nil {
		panic(err)
	}
	return out
}

// Default returns the built-in configuration backed by an in-memory
// filesystem, nothing it writes is persisted.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}
