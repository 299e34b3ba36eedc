// Package config loads, normalizes, and validates the antenna TOML
// configuration. Paths support ~ expansion and are resolved to absolute
// form during load; defaults apply for every field the file omits.
package config
