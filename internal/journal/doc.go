// Package journal persists a history of pipeline runs in SQLite. Each run
// records its sources, channel counts, classification stats, and final
// status so operators can audit what a scheduled invocation actually did.
package journal
