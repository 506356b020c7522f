// Package config loads docweave configuration. Values are layered from the
// embedded defaults, the user config file, an explicit file, environment
// variables and finally programmatic overrides, with later layers winning.
package config
