package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// AppConfig represents the application's configuration from .wvtool.yaml.
type AppConfig struct {
	Timeout     int    `yaml:"timeout"`      // watchdog interval in seconds
	NoColor     bool   `yaml:"no_color"`     // disable ANSI styling
	ForceColor  bool   `yaml:"color"`        // style output even when piped
	Verbosity   string `yaml:"verbosity"`    // summary, normal or verbose
	Width       int    `yaml:"width"`        // report width, 0 = autodetect
	Prefix      string `yaml:"prefix"`       // protocol line prefix pattern
	LogDir      string `yaml:"logdir"`       // per-test log file directory
	JUnitXML    string `yaml:"junit_xml"`    // JUnit XML output path
	JUnitPrefix string `yaml:"junit_prefix"` // classname prefix in the XML
	Debug       bool   `yaml:"debug"`
}

// Constants for default values.
const (
	DefaultTimeout   = 100
	DefaultVerbosity = "normal"
	configFileName   = ".wvtool.yaml"
)

// Load reads the .wvtool.yaml configuration, falling back to defaults when
// no file exists. A malformed file is reported and ignored rather than
// aborting the run.
func Load(log *logrus.Logger) *AppConfig {
	appCfg := &AppConfig{
		Timeout:   DefaultTimeout,
		Verbosity: DefaultVerbosity,
	}

	path := configPath()
	if path == "" {
		return appCfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warnf("reading config file %s, using defaults", path)
		}
		return appCfg
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		log.WithError(err).Warnf("unmarshalling config file %s, using defaults", path)
		return appCfg
	}

	if fileCfg.Timeout > 0 {
		appCfg.Timeout = fileCfg.Timeout
	}
	appCfg.NoColor = fileCfg.NoColor
	appCfg.ForceColor = fileCfg.ForceColor
	if fileCfg.Verbosity != "" {
		appCfg.Verbosity = fileCfg.Verbosity
	}
	if fileCfg.Width > 0 {
		appCfg.Width = fileCfg.Width
	}
	appCfg.Prefix = fileCfg.Prefix
	appCfg.LogDir = fileCfg.LogDir
	appCfg.JUnitXML = fileCfg.JUnitXML
	appCfg.JUnitPrefix = fileCfg.JUnitPrefix
	appCfg.Debug = fileCfg.Debug

	log.WithField("path", path).Debug("loaded config file")
	return appCfg
}

// configPath finds the .wvtool.yaml configuration file. It checks the local
// directory first, then the user config dir.
func configPath() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	path := filepath.Join(configHome, "wvtool", configFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// ValidVerbosity reports whether s names a known verbosity level.
func ValidVerbosity(s string) error {
	switch s {
	case "summary", "normal", "verbose":
		return nil
	}
	return fmt.Errorf("unknown verbosity %q (want summary, normal or verbose)", s)
}
