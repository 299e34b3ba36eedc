// Package services carries the cross-component error taxonomy and the
// context keys used to correlate log output with a pipeline run.
package services
