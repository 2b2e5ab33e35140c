// Package config handles configuration loading and merging for wvtool.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to
// lowest priority):
//
//  1. CLI flags (--timeout, --no-color, --logdir, etc.)
//  2. Environment variables (NO_COLOR, WVTOOL_DEBUG)
//  3. YAML config file (.wvtool.yaml in the working directory or
//     ~/.config/wvtool/.wvtool.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any
// lower-priority values.
package config
