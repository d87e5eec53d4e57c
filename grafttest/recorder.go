package grafttest

import (
	"sync"

	"github.com/graftfn/graft"
)

// Recorder captures interceptor activity in order of occurrence.  It is
// safe for concurrent use, so one recorder can observe pipelines invoked
// from multiple goroutines.
//
// Use Tag to mint interceptors bound to the recorder:
//
//	var r grafttest.Recorder[int]
//	u, err := graft.NewUnit(
//	  "math",
//	  graft.WithStepInterceptors[int](r.Tag("trace")),
//	)
type Recorder[S any] struct {
	mu     sync.Mutex
	events []string
}

func (r *Recorder[S]) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the events recorded so far, oldest first.
func (r *Recorder[S]) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.events...)
}

// Reset discards all recorded events.
func (r *Recorder[S]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Tag mints a labeled interceptor bound to this recorder.
func (r *Recorder[S]) Tag(label string) *TaggedInterceptor[S] {
	return &TaggedInterceptor[S]{
		recorder: r,
		label:    label,
	}
}

// TaggedInterceptor is a labeled interceptor that journals its lifecycle
// in the Recorder that minted it.  It satisfies both interceptor
// contracts and records four kinds of events:
//
//	init:<label>:<owner>   when Init runs
//	wrap:<label>           when Wrap decorates a transform
//	enter:<label>          before the decorated transform runs
//	exit:<label>           after the decorated transform returns
type TaggedInterceptor[S any] struct {
	recorder *Recorder[S]
	label    string

	// InitErr, when non-nil, is returned by Init.  Set it to exercise
	// unit load failures.
	InitErr error
}

var (
	_ graft.StepInterceptor[int]     = (*TaggedInterceptor[int])(nil)
	_ graft.PipelineInterceptor[int] = (*TaggedInterceptor[int])(nil)
)

// Init records the owner handed to it and returns InitErr
func (ti *TaggedInterceptor[S]) Init(owner string) error {
	ti.recorder.record("init:" + ti.label + ":" + owner)
	return ti.InitErr
}

// Wrap decorates next with enter and exit events
func (ti *TaggedInterceptor[S]) Wrap(next graft.Transform[S]) graft.Transform[S] {
	ti.recorder.record("wrap:" + ti.label)
	return func(s S) S {
		ti.recorder.record("enter:" + ti.label)
		out := next(s)
		ti.recorder.record("exit:" + ti.label)
		return out
	}
}
