// Package config handles the optional robustgit.yaml settings file.
// Every field has a default matching the built-in supervision constants, so
// a missing file or an empty file both yield a working configuration.
package config
