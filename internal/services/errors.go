package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks missing or empty required operator input.
	ErrInput = errors.New("input error")
	// ErrFetch marks an unreachable or non-success question source.
	ErrFetch = errors.New("fetch error")
	// ErrFormat marks a malformed question payload or collaborator response.
	ErrFormat = errors.New("format error")
	// ErrGeneration marks a failed narrative text-generation call.
	ErrGeneration = errors.New("generation error")
	// ErrSynthesis marks a failed speech synthesis call.
	ErrSynthesis = errors.New("synthesis error")
	// ErrNetwork marks a failed image download.
	ErrNetwork = errors.New("network error")
	// ErrRender marks a bundling, composition resolution, or render failure.
	ErrRender = errors.New("render error")
	// ErrExternalTool marks a failure in a shelled-out helper binary.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns the short classification label for a wrapped error, or
// "failure" when the error carries no known marker. Used in operator-facing
// summaries.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInput):
		return "input"
	case errors.Is(err, ErrFetch):
		return "fetch"
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrGeneration):
		return "generation"
	case errors.Is(err, ErrSynthesis):
		return "synthesis"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrRender):
		return "render"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrExternalTool):
		return "external tool"
	default:
		return "failure"
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
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
