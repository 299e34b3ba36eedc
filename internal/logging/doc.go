// Package logging constructs the slog loggers used across antenna. Two
// handler formats exist: a pretty console handler for interactive use and
// a JSON handler for machine consumption. Component loggers attach a
// "component" attribute that the console handler promotes into the message
// prefix.
package logging
