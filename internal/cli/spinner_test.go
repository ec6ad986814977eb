package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.Start()

	for i := 0; i < 3; i++ {
		s.Stop()
	}
}

func TestSpinnerCancellation(t *testing.T) {
	tests := []struct {
		name   string
		ctx    func() (context.Context, context.CancelFunc)
		cancel bool
	}{
		{
			name:   "explicit cancel",
			ctx:    func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			cancel: true,
		},
		{
			name: "timeout",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 20*time.Millisecond)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "working")
			s.Start()
			if tt.cancel {
				cancel()
			}

			// Give the animation goroutine time to observe the
			// cancellation.
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("Cancelled() = false after context cancellation")
			}
		})
	}
}

func TestSpinnerStopMessages(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	s.StopWithSuccess("done")

	s = newSpinner("working")
	s.Start()
	s.StopWithError("failed")
}
