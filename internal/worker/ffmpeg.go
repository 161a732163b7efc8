package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"dreamcodec/internal/logging"
)

var commandContext = exec.CommandContext

const logRingSize = 50

// FFmpeg runs conversions by spawning a local ffmpeg process per task.
// It implements Worker for single-machine use; progress percentages are
// derived from the Duration and time= markers ffmpeg writes to stderr.
type FFmpeg struct {
	binary string
	logger *slog.Logger

	mu    sync.Mutex
	tasks map[string]*ffmpegTask
}

type ffmpegTask struct {
	cancel context.CancelFunc

	mu         sync.Mutex
	status     TaskStatus
	percentage float64
	log        []string
	duration   float64
}

// NewFFmpeg constructs a local worker. An empty binary defaults to
// "ffmpeg" on PATH.
func NewFFmpeg(binary string, logger *slog.Logger) *FFmpeg {
	name := strings.TrimSpace(binary)
	if name == "" {
		name = "ffmpeg"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FFmpeg{
		binary: name,
		logger: logging.NewComponentLogger(logger, "worker"),
		tasks:  make(map[string]*ffmpegTask),
	}
}

// Start spawns ffmpeg for the request and returns the task id. The
// provided context covers process launch only; the conversion itself
// runs until completion or Cancel.
func (f *FFmpeg) Start(ctx context.Context, req StartRequest) (string, error) {
	if strings.TrimSpace(req.InputPath) == "" {
		return "", errors.New("input path required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return "", errors.New("output path required")
	}
	if strings.TrimSpace(req.Encoder) == "" {
		return "", errors.New("encoder required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	args := []string{"-hide_banner", "-nostdin", "-y", "-i", req.InputPath, "-c:v", req.Encoder}
	if req.Preset != "" {
		args = append(args, "-preset", req.Preset)
	}
	if req.GPUDeviceIndex != nil && strings.Contains(req.Encoder, "nvenc") {
		args = append(args, "-gpu", strconv.Itoa(*req.GPUDeviceIndex))
	}
	if req.CPUThreadCap != nil {
		args = append(args, "-threads", strconv.Itoa(*req.CPUThreadCap))
	}
	args = append(args, "-c:a", "copy", req.OutputPath)

	runCtx, cancel := context.WithCancel(context.Background())
	cmd := commandContext(runCtx, f.binary, args...) //nolint:gosec
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return "", fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return "", fmt.Errorf("start %s: %w", f.binary, err)
	}

	taskID := uuid.NewString()
	task := &ffmpegTask{cancel: cancel, status: StatusRunning}

	f.mu.Lock()
	f.tasks[taskID] = task
	f.mu.Unlock()

	f.logger.Info("conversion started",
		logging.String(logging.FieldTaskID, taskID),
		logging.String("input", req.InputPath),
		logging.String("encoder", req.Encoder))

	go f.supervise(runCtx, cmd, stderr, task, taskID)

	return taskID, nil
}

func (f *FFmpeg) supervise(ctx context.Context, cmd *exec.Cmd, stderr io.Reader, task *ffmpegTask, taskID string) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		task.observeLine(scanner.Text())
	}
	err := cmd.Wait()

	task.mu.Lock()
	switch {
	case err == nil:
		task.status = StatusCompleted
		task.percentage = 100
	case ctx.Err() != nil:
		task.status = StatusCancelled
	default:
		task.status = StatusFailed
	}
	status := task.status
	task.mu.Unlock()

	f.logger.Info("conversion finished",
		logging.String(logging.FieldTaskID, taskID),
		logging.String("status", string(status)))
}

func (t *ffmpegTask) observeLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.log = append(t.log, trimmed)
	if len(t.log) > logRingSize {
		t.log = t.log[len(t.log)-logRingSize:]
	}

	if t.duration == 0 {
		if stamp, ok := markerValue(trimmed, "Duration: "); ok {
			if secs, err := parseTimestamp(stamp); err == nil && secs > 0 {
				t.duration = secs
			}
		}
	}
	if stamp, ok := markerValue(trimmed, "time="); ok && t.duration > 0 {
		if secs, err := parseTimestamp(stamp); err == nil {
			pct := secs / t.duration * 100
			if pct > 100 {
				pct = 100
			}
			if pct > t.percentage {
				t.percentage = pct
			}
		}
	}
}

// Progress reports the current state of a task. Unknown ids return
// (nil, nil): the task is no longer observable. A terminal status is
// reported once; the task is then dropped so the map does not grow with
// the session.
func (f *FFmpeg) Progress(ctx context.Context, taskID string) (*TaskProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	task, ok := f.tasks[taskID]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}

	task.mu.Lock()
	snapshot := &TaskProgress{
		Status:     task.status,
		Percentage: task.percentage,
		Log:        append([]string(nil), task.log...),
	}
	task.mu.Unlock()

	if snapshot.Status.Terminal() {
		f.mu.Lock()
		delete(f.tasks, taskID)
		f.mu.Unlock()
	}
	return snapshot, nil
}

// Cancel stops a running task. Cancelling an unknown or finished task
// is a no-op.
func (f *FFmpeg) Cancel(ctx context.Context, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	task, ok := f.tasks[taskID]
	f.mu.Unlock()
	if !ok {
		return nil
	}
	task.cancel()
	return nil
}

// markerValue extracts the token following marker in line, or reports
// that the marker is absent.
func markerValue(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(marker):]
	if cut := strings.IndexAny(rest, ", "); cut >= 0 {
		rest = rest[:cut]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}

// parseTimestamp converts an HH:MM:SS.cc stamp to seconds.
func parseTimestamp(stamp string) (float64, error) {
	parts := strings.Split(stamp, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", stamp)
	}
	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", stamp)
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", stamp)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", stamp)
	}
	return hours*3600 + minutes*60 + seconds, nil
}

var _ Worker = (*FFmpeg)(nil)
