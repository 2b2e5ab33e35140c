package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// CliFlags holds the values of command-line flags, with Set markers for
// flags whose zero value is meaningful.
type CliFlags struct {
	Timeout     int
	NoColor     bool
	ForceColor  bool
	Verbosity   string
	Width       int
	Prefix      string
	LogDir      string
	JUnitXML    string
	JUnitPrefix string
	Debug       bool

	TimeoutSet    bool
	NoColorSet    bool
	ForceColorSet bool
	WidthSet      bool
	PrefixSet     bool
	DebugSet      bool
}

// Resolved holds the final configuration after applying all priority rules:
// CLI flags over environment variables over the config file over defaults.
type Resolved struct {
	Timeout     int
	NoColor     bool
	ForceColor  bool
	Verbosity   string
	Width       int
	Prefix      string
	LogDir      string
	JUnitXML    string
	JUnitPrefix string
	Debug       bool
}

// Resolve merges CLI flags, environment and the config file into the final
// configuration. This is the single source of truth for config resolution.
func Resolve(flags CliFlags, log *logrus.Logger) (*Resolved, error) {
	appCfg := Load(log)

	resolved := &Resolved{
		Timeout:     appCfg.Timeout,
		NoColor:     appCfg.NoColor,
		ForceColor:  appCfg.ForceColor,
		Verbosity:   appCfg.Verbosity,
		Width:       appCfg.Width,
		Prefix:      appCfg.Prefix,
		LogDir:      appCfg.LogDir,
		JUnitXML:    appCfg.JUnitXML,
		JUnitPrefix: appCfg.JUnitPrefix,
		Debug:       appCfg.Debug,
	}

	if flags.TimeoutSet {
		resolved.Timeout = flags.Timeout
	}
	if flags.NoColorSet {
		resolved.NoColor = flags.NoColor
	} else if os.Getenv("NO_COLOR") != "" {
		resolved.NoColor = true
	}
	if flags.ForceColorSet {
		resolved.ForceColor = flags.ForceColor
	}
	if flags.Verbosity != "" {
		resolved.Verbosity = flags.Verbosity
	}
	if flags.WidthSet {
		resolved.Width = flags.Width
	}
	if flags.PrefixSet {
		resolved.Prefix = flags.Prefix
	}
	if flags.LogDir != "" {
		resolved.LogDir = flags.LogDir
	}
	if flags.JUnitXML != "" {
		resolved.JUnitXML = flags.JUnitXML
	}
	if flags.JUnitPrefix != "" {
		resolved.JUnitPrefix = flags.JUnitPrefix
	}
	if flags.DebugSet {
		resolved.Debug = flags.Debug
	} else if os.Getenv("WVTOOL_DEBUG") != "" {
		resolved.Debug = true
	}

	if err := ValidVerbosity(resolved.Verbosity); err != nil {
		return nil, err
	}
	if resolved.NoColor {
		// NO_COLOR wins over a color: true config entry; an explicit
		// --color flag still forces styling.
		if flags.ForceColorSet && flags.ForceColor {
			resolved.NoColor = false
		} else {
			resolved.ForceColor = false
		}
	}
	return resolved, nil
}
