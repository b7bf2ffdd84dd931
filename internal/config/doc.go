// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// The request block decodes into the model enumerations, so an unknown
// source, symbol or month literal fails at load time.
package config
