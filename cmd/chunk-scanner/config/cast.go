package config

import (
	"time"

	"github.com/spf13/cast"
)

// String reads the configuration value by name and casts it to string.
// Returns def if the value is missing.
func String(c *Config, name, def string) string {
	if v := c.Value(name); v != nil {
		return cast.ToString(v)
	}

	return def
}

// Int reads the configuration value by name and casts it to int.
// Returns def if the value is missing.
func Int(c *Config, name string, def int) int {
	if v := c.Value(name); v != nil {
		return cast.ToInt(v)
	}

	return def
}

// Duration reads the configuration value by name and casts it to
// time.Duration using the usual suffix notation ("30s", "5m").
// Returns def if the value is missing.
func Duration(c *Config, name string, def time.Duration) time.Duration {
	if v := c.Value(name); v != nil {
		return cast.ToDuration(v)
	}

	return def
}

// Bool reads the configuration value by name and casts it to bool.
// Returns def if the value is missing.
func Bool(c *Config, name string, def bool) bool {
	if v := c.Value(name); v != nil {
		return cast.ToBool(v)
	}

	return def
}
