package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks invalid user-supplied render or export
	// parameters: malformed colors, bad aspect ratios, unrecognized output
	// extensions.
	ErrConfiguration = errors.New("configuration error")
	// ErrLookup marks an index referenced by a container table that is out
	// of bounds against its backing table, or a render path with no
	// registered clip. Fatal for the operation that hit it.
	ErrLookup = errors.New("lookup error")
	// ErrUnsupportedAsset marks an asset the codec library cannot handle.
	// Normalization recovers from it per asset; export does not.
	ErrUnsupportedAsset = errors.New("unsupported asset")
	// ErrEmptyResult marks a render that produced zero frames.
	ErrEmptyResult = errors.New("empty result")
)

// Wrap builds an error message carrying component context while tagging it
// with the provided marker for errors.Is classification. The marker should be
// one of the exported sentinels above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = errors.New("pipeline failure")
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether err should abort the whole operation rather than be
// recovered per asset.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrUnsupportedAsset)
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
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
