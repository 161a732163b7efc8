package worker_test

import (
	"testing"

	"dreamcodec/internal/worker"
)

func TestDeriveFailureMessagePrecedence(t *testing.T) {
	cases := []struct {
		name     string
		progress *worker.TaskProgress
		want     string
	}{
		{
			name: "explicit error message wins",
			progress: &worker.TaskProgress{
				ErrorMessage: "out of GPU memory",
				Log:          []string{"Error: invalid codec"},
			},
			want: "out of GPU memory",
		},
		{
			name: "keyword log line",
			progress: &worker.TaskProgress{
				Log: []string{
					"frame=  100 fps= 30",
					"Error: invalid codec",
					"frame=  101 fps= 30",
				},
			},
			want: "Error: invalid codec",
		},
		{
			name: "most recent keyword line preferred",
			progress: &worker.TaskProgress{
				Log: []string{
					"Error: first",
					"Permission denied: /dev/dri/renderD128",
				},
			},
			want: "Permission denied: /dev/dri/renderD128",
		},
		{
			name: "falls back to last log line",
			progress: &worker.TaskProgress{
				Log: []string{"frame=  100", "frame=  200"},
			},
			want: "frame=  200",
		},
		{
			name:     "no information at all",
			progress: &worker.TaskProgress{},
			want:     "conversion failed",
		},
		{
			name: "nil progress",
			want: "conversion failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := worker.DeriveFailureMessage(tc.progress); got != tc.want {
				t.Fatalf("DeriveFailureMessage = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTaskStatusTerminal(t *testing.T) {
	terminal := []worker.TaskStatus{worker.StatusCompleted, worker.StatusFailed, worker.StatusCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %q terminal", s)
		}
	}
	for _, s := range []worker.TaskStatus{worker.StatusPending, worker.StatusRunning} {
		if s.Terminal() {
			t.Errorf("expected %q non-terminal", s)
		}
	}
}
