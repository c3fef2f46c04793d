// Package config loads settings for the signup binaries from defaults, an
// optional YAML file, and SIGNUP_* environment variables.
package config
