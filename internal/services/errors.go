package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFilesystem marks failures enumerating the library. Aborts the run.
	ErrFilesystem = errors.New("filesystem error")
	// ErrConfiguration marks unusable settings or credentials. Aborts the run.
	ErrConfiguration = errors.New("configuration error")
	// ErrParse marks a metadata file missing or mangling a required tag.
	ErrParse = errors.New("parse error")
	// ErrIO marks a failed metadata write.
	ErrIO = errors.New("io error")
	// ErrNetwork marks transport failures and unexpected remote statuses.
	ErrNetwork = errors.New("network error")
	// ErrNotFound marks a show or season the remote database does not know.
	ErrNotFound = errors.New("not found")
	// ErrResponseFormat marks a successful response missing expected fields.
	ErrResponseFormat = errors.New("response format error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether err must abort the whole run. Everything else is
// handled by skipping the smallest affected item.
func Fatal(err error) bool {
	return errors.Is(err, ErrFilesystem) || errors.Is(err, ErrConfiguration)
}

// SkipReason maps a per-item error to the label used in warnings and the run
// summary.
func SkipReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not-found"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrResponseFormat):
		return "response-format"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "error"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
