// Package pipeline owns the shared error taxonomy and the container loading
// hooks used by every stage downstream.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"afptool/internal/afp"
	"afptool/internal/logging"
)

// Opener attempts to parse raw container bytes. ok is false when the bytes
// are not this opener's family; a non-nil error means the family matched but
// the archive is broken.
type Opener func(source string, data []byte) (container afp.Container, ok bool, err error)

// Loader resolves raw container bytes against the registered parser hooks in
// registration order.
type Loader struct {
	openers []Opener
	log     *slog.Logger
}

// NewLoader builds a loader over the given openers.
func NewLoader(logger *slog.Logger, openers ...Opener) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{openers: openers, log: logger.With(logging.FieldComponent, "loader")}
}

// Register appends an opener after the existing ones.
func (l *Loader) Register(opener Opener) {
	l.openers = append(l.openers, opener)
}

// Open tries each opener in order and returns the first parsed container.
// Bytes no opener claims come back as an unrecognized container, which the
// normalizer skips with a warning rather than failing the batch.
func (l *Loader) Open(source string, data []byte) afp.Container {
	for _, opener := range l.openers {
		container, ok, err := opener(source, data)
		if !ok {
			continue
		}
		if err != nil {
			l.log.Debug("container family matched but failed to parse", "source", source, "error", err)
			continue
		}
		return container
	}
	return unrecognized{source: source}
}

type unrecognized struct {
	source string
}

func (u unrecognized) Source() string { return u.source }

// NewRunContext stamps a fresh run identifier onto ctx so every log line of
// one pipeline run can be correlated.
func NewRunContext(ctx context.Context) context.Context {
	return logging.WithRunID(ctx, uuid.NewString())
}
