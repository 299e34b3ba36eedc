package services

import (
	"errors"
	"fmt"
	"strings"

	"antenna/internal/journal"
)

var (
	// ErrFetch marks a network or transport failure for one source. The
	// source contributes nothing and the pipeline continues.
	ErrFetch = errors.New("fetch error")
	// ErrConfiguration marks a missing or unusable required input, such as
	// an absent lineup template.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoContent marks a run where no source produced a usable channel.
	ErrNoContent = errors.New("no content")
	// ErrNoTemplate marks a run whose lineup template parsed to zero
	// categories.
	ErrNoTemplate = errors.New("empty template")
	// ErrWrite marks an output persistence failure.
	ErrWrite = errors.New("write error")
)

// Wrap builds an error message that includes stage context while tagging
// it with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a pipeline error to the journal status recorded for
// the run. Empty-input conditions are journaled as empty rather than
// failed since they end the run without fault.
func FailureStatus(err error) journal.Status {
	switch {
	case errors.Is(err, ErrNoContent), errors.Is(err, ErrNoTemplate):
		return journal.StatusEmpty
	default:
		return journal.StatusFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
