// Package config loads, validates, and defaults cuesync's TOML
// configuration. Paths are tilde-expanded and environment overrides
// (PROJECT_ROOT) are applied during normalization so the rest of the code
// only ever sees resolved values.
package config
