// Package config defines the fixed installation paths and feed parameters
// used by the updater and provides helpers to validate and print them as YAML.
//
// Nothing here is read from disk: Default is the single source of values.
package config
