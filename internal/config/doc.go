// Package config loads and validates the module configuration.
//
// Configuration is layered: an optional YAML file provides the base values
// and environment variables with the FIIPULSE prefix override it. All source
// URL templates, trust ranks, retry policy knobs and the ledger location are
// configuration, never user input.
package config
