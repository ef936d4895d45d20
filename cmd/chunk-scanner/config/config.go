// Package config implements the configuration tree of the chunk-scanner
// application. Values come from an optional YAML file and may be overridden
// through the environment with the ANVIL_NODE_ prefix, dots replaced by
// underscores (e.g. storage.max_open_regions -> ANVIL_NODE_STORAGE_MAX_OPEN_REGIONS).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const separator = "."

const (
	envPrefix    = "ANVIL_NODE"
	envSeparator = "_"
)

// Config represents a group of named values structured by tree type.
// Sub-trees are named configuration sections, leaves are named values.
type Config struct {
	v *viper.Viper

	path []string
}

// New creates a Config. If a file path option is provided, configuration
// values are read from it; otherwise the tree holds only environment and
// default values.
func New(opts ...Option) *Config {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(separator, envSeparator))

	o := defaultOpts()
	for i := range opts {
		opts[i](o)
	}

	if o.path != "" {
		v.SetConfigFile(o.path)

		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("failed to read config: %w", err))
		}
	}

	return &Config{v: v}
}

// Sub returns a subsection of the Config by name. Never returns nil.
func (x *Config) Sub(name string) *Config {
	return &Config{
		v:    x.v,
		path: append(x.path[:len(x.path):len(x.path)], name),
	}
}

// Value returns the configuration value by name, or nil if missing.
func (x *Config) Value(name string) any {
	return x.v.Get(strings.Join(append(x.path, name), separator))
}
