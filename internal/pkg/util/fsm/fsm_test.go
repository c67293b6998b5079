package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/assert"
)

func TestCause(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no transition", fsm.NoTransitionError{}, nil},
		{"canceled", fsm.CanceledError{}, nil},
		{"no transition with cause", fsm.NoTransitionError{Err: boom}, boom},
		{"plain", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cause(tt.err))
			assert.Equal(t, tt.want != nil, IsRealError(tt.err))
		})
	}
}

func TestWrapEvent(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	m := fsm.NewFSM("a",
		fsm.Events{{Name: "go", Src: []string{"a", "b"}, Dst: "b"}},
		fsm.Callbacks{
			"after_go": WrapEvent(func(_ context.Context, _ *fsm.Event) error {
				calls++
				if calls > 1 {
					return boom
				}
				return nil
			}),
		},
	)

	assert.NoError(t, m.Event(t.Context(), "go"))
	assert.Equal(t, "b", m.Current())

	err := m.Event(t.Context(), "go")
	assert.True(t, IsRealError(err))
	assert.ErrorIs(t, Cause(err), boom)
	assert.Equal(t, 2, calls)
}
