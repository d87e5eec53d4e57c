package graft

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logging is an interceptor that records registration and per-call
// activity through a zerolog.Logger.  It satisfies both interceptor
// kinds, so one value can trace branches, whole pipelines, or both.
// Its Init never fails, and it leaves the state flowing through
// untouched.
type Logging[S any] struct {
	logger zerolog.Logger
	kind   string
	owner  string
}

// NewLogging builds a logging interceptor that traces at debug level.
// kind appears in every event and is conventionally StepKind or
// PipelineKind, matching how the interceptor is declared.
func NewLogging[S any](logger zerolog.Logger, kind string) *Logging[S] {
	return &Logging[S]{
		logger: logger,
		kind:   kind,
	}
}

// Init records the owning unit and logs the registration.
func (l *Logging[S]) Init(owner string) error {
	l.owner = owner
	l.logger.Debug().
		Str("owner", owner).
		Str("kind", l.kind).
		Msg("interceptor initialized")

	return nil
}

// Wrap decorates next with entry and exit events.  Each call gets a
// fresh invocation id, and the exit event carries the elapsed
// duration.
func (l *Logging[S]) Wrap(next Transform[S]) Transform[S] {
	return func(s S) S {
		var (
			id    = uuid.NewString()
			start = time.Now()
		)

		l.logger.Debug().
			Str("owner", l.owner).
			Str("kind", l.kind).
			Str("invocation", id).
			Msg("begin")

		out := next(s)

		l.logger.Debug().
			Str("owner", l.owner).
			Str("kind", l.kind).
			Str("invocation", id).
			Dur("elapsed", time.Since(start)).
			Msg("end")

		return out
	}
}
