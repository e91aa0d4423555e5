// Package config resolves the refalgo run configuration.
//
// Values are layered, lowest priority first: built-in defaults, an optional
// YAML file (--config), REFALGO_* environment variables, and finally
// command-line flags.
package config
