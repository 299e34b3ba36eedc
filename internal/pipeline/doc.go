// Package pipeline orchestrates a full aggregation run: fetch every
// playlist source, parse and normalize the channels, classify them against
// the lineup template, and persist the classified document. A run takes an
// exclusive file lock so overlapping scheduled invocations cannot
// interleave output writes.
package pipeline
