// Package config holds the crawler configuration and its defaults.
//
// Configuration is layered: package defaults are overridden by the
// optional .adventcal YAML file, which is in turn overridden by CLI
// flags. The config is built once per command invocation and passed
// through the application by value; there is no global state.
package config
