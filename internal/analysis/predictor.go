package analysis

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/threatlens/threatlens-api/internal/config"
)

// Predictor turns a threat description into a category label
type Predictor interface {
	Predict(ctx context.Context, description string) (string, error)
}

// PredictorFunc adapts a function to Predictor
type PredictorFunc func(ctx context.Context, description string) (string, error)

func (f PredictorFunc) Predict(ctx context.Context, description string) (string, error) {
	return f(ctx, description)
}

// ProcessPredictor runs one external process per prediction:
// Command Args... description. The label is the process's stdout.
type ProcessPredictor struct {
	Command string
	Args    []string
	WorkDir string
	Env     []string // appended to the parent environment
	Timeout time.Duration
}

func NewProcessPredictor(cfg config.PredictorConfig) *ProcessPredictor {
	return &ProcessPredictor{
		Command: cfg.Command,
		Args:    cfg.Args,
		WorkDir: cfg.WorkDir,
		Timeout: cfg.Timeout,
	}
}

// Predict spawns the predictor and waits for it to exit. A non-zero exit,
// a spawn failure or a timeout is reported as *PredictionError.
func (p *ProcessPredictor) Predict(ctx context.Context, description string) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := append(slices.Clone(p.Args), description)

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, p.Command, args...)
	command.Dir = p.WorkDir
	if len(p.Env) > 0 {
		command.Env = append(os.Environ(), p.Env...)
	}
	command.Stdout = &stdout
	command.Stderr = &stderr
	command.WaitDelay = time.Second

	err := command.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", &PredictionError{Stderr: stderr.String(), ExitCode: -1, TimedOut: true, Err: ctx.Err()}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &PredictionError{Stderr: stderr.String(), ExitCode: exitErr.ExitCode(), Err: err}
		}
		return "", &PredictionError{ExitCode: -1, Err: err}
	}

	return strings.TrimSpace(stdout.String()), nil
}
