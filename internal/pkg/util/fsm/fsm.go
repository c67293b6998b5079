package fsm

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// WrapEvent adapts an error-returning handler to a looplab/fsm callback.
// A returned error is stored on the event and surfaces from FSM.Event.
func WrapEvent(fn func(ctx context.Context, event *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, event *fsm.Event) {
		if err := fn(ctx, event); err != nil {
			event.Err = err
		}
	}
}

// IsRealError reports whether err from FSM.Event is a failure rather than a
// self-transition or a cancelled guard. Wrapped handler errors are unwrapped
// from NoTransitionError and CanceledError.
func IsRealError(err error) bool {
	return Cause(err) != nil
}

// Cause returns the handler error carried by err, or nil when err only
// signals that no transition happened.
func Cause(err error) error {
	if err == nil {
		return nil
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return noTransition.Err
	}
	var canceled fsm.CanceledError
	if errors.As(err, &canceled) {
		return canceled.Err
	}
	return err
}
