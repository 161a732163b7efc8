package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dreamcodec/internal/daemon"
	"dreamcodec/internal/encoders"
	"dreamcodec/internal/engine"
	"dreamcodec/internal/notifications"
	"dreamcodec/internal/queue"
	"dreamcodec/internal/worker"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var ffmpegBinary string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert everything in the queue and wait for completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.fileLogger()
			if err != nil {
				return err
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			prefStore, err := ctx.preferenceStore()
			if err != nil {
				return err
			}
			monitor, err := ctx.hardwareMonitor(logger)
			if err != nil {
				return err
			}
			if _, ok := monitor.Current(); !ok {
				if _, err := monitor.Refresh(cmd.Context()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "hardware detection failed: %v; continuing with CPU encoders\n", err)
				}
			}

			eng := engine.New(cfg, store, worker.NewFFmpeg(ffmpegBinary, logger), monitor, prefStore, logger,
				engine.WithNotifier(notifications.NewService(cfg)),
				engine.WithEncoderSource(func(ctx context.Context) ([]encoders.Encoder, error) {
					return encoders.Probe(ctx, ffmpegBinary)
				}),
			)

			runner, err := daemon.NewRunner(cfg, eng, logger)
			if err != nil {
				return err
			}
			if err := runner.Start(); err != nil {
				if errors.Is(err, daemon.ErrAlreadyRunning) {
					return fmt.Errorf("another dreamcodec instance is already running (lock at %s)", runner.LockPath())
				}
				return err
			}
			defer runner.Stop()

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			count, err := eng.StartBatch(sigCtx)
			if err != nil {
				var cfgErr *engine.ConfigError
				if errors.As(err, &cfgErr) {
					return fmt.Errorf("cannot start conversions: %s", cfgErr.Reason)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if count == 0 {
				fmt.Fprintln(out, "Queue is empty; nothing to convert")
				return nil
			}
			fmt.Fprintf(out, "Converting %d file(s)\n", count)

			if err := waitForBatch(sigCtx, eng, out); err != nil {
				return err
			}

			counts := eng.StatusCounts()
			fmt.Fprintf(out, "Done: %d completed, %d failed, %d cancelled\n",
				counts.Completed, counts.Failed, counts.Cancelled)
			return nil
		},
	}

	cmd.Flags().StringVar(&ffmpegBinary, "ffmpeg", "", "Path to the ffmpeg binary")
	return cmd
}

// waitForBatch blocks until the active job set drains, printing a
// status line whenever observed progress changes.
func waitForBatch(ctx context.Context, eng *engine.Engine, out io.Writer) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastLine := ""
	for {
		select {
		case <-ctx.Done():
			for _, job := range eng.Snapshot() {
				if !job.Status.Terminal() {
					_ = eng.Cancel(context.Background(), job.ID)
				}
			}
			return ctx.Err()
		case <-ticker.C:
			counts := eng.StatusCounts()
			if !counts.Active() {
				return nil
			}
			line := progressLine(eng.Snapshot())
			if line != "" && line != lastLine {
				fmt.Fprintln(out, line)
				lastLine = line
			}
		}
	}
}

func progressLine(jobs []engine.Job) string {
	line := ""
	for _, job := range jobs {
		if job.Status != engine.StatusConverting {
			continue
		}
		if line != "" {
			line += "  "
		}
		line += fmt.Sprintf("%s %3.0f%%", job.DisplayTitle, job.ProgressPercent)
	}
	return line
}
