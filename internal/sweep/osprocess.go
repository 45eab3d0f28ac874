// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mwpot14/mwsweep/internal/ctxlog"
	"github.com/mwpot14/mwsweep/internal/progress"
	"github.com/mwpot14/mwsweep/internal/signalbroker"
)

// heartbeatInterval is how often a running process reports an elapsed-time
// progress event.
const heartbeatInterval = 10 * time.Second

var _ Runnable = (*OSProcess)(nil)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrSignalReceived is returned when an OS signal was forwarded to the child process.
	ErrSignalReceived = errors.New("signal received")
	// ErrContextDone is returned when the context was cancelled and the process killed.
	ErrContextDone = errors.New("context cancelled, process killed")
)

// OSProcess is a single sampler invocation run as an independent OS process.
// The child inherits the launcher's stdin, stdout and stderr unless Stdout
// or Stderr are set; the launcher never captures its output.
type OSProcess struct {
	Index    int               // Job index within the sweep
	Label    string            // Display label
	Path     string            // Program to run
	Args     []string          // Arguments, excluding the program itself
	Env      map[string]string // Extra environment variables
	Stdout   *os.File          // Child stdout; defaults to os.Stdout
	Stderr   *os.File          // Child stderr; defaults to os.Stderr
	reporter progress.Reporter
	sigCh    chan os.Signal // Signal channel, replaceable in tests
}

// GetLabel implements Runnable.
func (c *OSProcess) GetLabel() string {
	if c.Label == "" {
		return "Process"
	}

	return c.Label
}

// InheritEnv implements Runnable.
func (c *OSProcess) InheritEnv(env map[string]string) {
	if c.Env == nil {
		c.Env = make(map[string]string, len(env))
	}

	for k, v := range env {
		if _, ok := c.Env[k]; !ok {
			c.Env[k] = v
		}
	}
}

// SetReporter implements Runnable.
func (c *OSProcess) SetReporter(r progress.Reporter) {
	c.reporter = r
}

func (c *OSProcess) report(t progress.EventType, msg string, exitCode int, err error) {
	if c.reporter == nil {
		return
	}

	c.reporter.Report(progress.Event{
		JobIndex:  c.Index,
		Label:     c.GetLabel(),
		Type:      t,
		Message:   msg,
		Timestamp: time.Now(),
		ExitCode:  exitCode,
		Err:       err,
	})
}

// Run implements Runnable. It starts the process, forwards signals while it
// runs, and waits for it to terminate. The exit code is recorded in the
// Result but a non-zero code is not treated as a launcher error.
func (c *OSProcess) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).
		With("runnableType", "OSProcess").
		With("label", c.GetLabel())

	logger.Debug("process info", "path", c.Path, "args", c.Args)

	if c.sigCh == nil {
		c.sigCh = signalbroker.New(ctx)
	}

	res := &Result{
		Index: c.Index,
		Label: c.GetLabel(),
	}

	env := os.Environ()
	for k, v := range c.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	execName := filepath.Base(c.Path)
	args := slices.Concat([]string{execName}, c.Args)

	ps, err := os.StartProcess(c.Path, args, &os.ProcAttr{
		Env:   env,
		Files: []*os.File{os.Stdin, stdout, stderr},
	})
	if err != nil {
		res.Error = errors.Join(ErrCouldNotStartProcess, err)
		res.ExitCode = -1
		res.Status = ResultStatusError

		c.report(progress.EventFailed, "could not start process", res.ExitCode, res.Error)

		return Results{res}
	}

	startTime := time.Now()

	logger.Debug("process started", "pid", ps.Pid)
	c.report(progress.EventStarted, "process started", 0, nil)

	// The watchdog forwards signals to the child and kills it when the
	// context is cancelled. wasKilled records why.
	done := make(chan struct{})
	wasKilled := make(chan error)

	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				elapsed := time.Since(startTime).Round(time.Second)
				c.report(progress.EventRunning, fmt.Sprintf("running for %s", elapsed), 0, nil)

			case s := <-c.sigCh:
				logger.Info("forwarding signal to process", "signal", s.String(), "pid", ps.Pid)

				if err := ps.Signal(s); err != nil {
					logger.Info("failed to forward signal", "signal", s.String(), "error", err)
				}

				select {
				case wasKilled <- ErrSignalReceived:
				case <-done:
				}

			case <-ctx.Done():
				logger.Info("context done, killing process", "pid", ps.Pid)
				killPs(ctx, ps)

				select {
				case wasKilled <- ErrContextDone:
				case <-done:
				}

				return

			case <-done:
				return
			}
		}
	}()

	logger.Debug("waiting for process to finish")

	state, psErr := ps.Wait()

	res.ExitCode = exitCodeOf(state)
	res.Error = psErr
	res.Status = ResultStatusSuccess
	res.Elapsed = time.Since(startTime)

	select {
	case e := <-wasKilled:
		res.Error = errors.Join(res.Error, e)
		res.Status = ResultStatusError
	default:
	}

	close(done)

	select {
	case <-wasKilled:
	default:
		close(wasKilled)
	}

	if res.Error != nil {
		res.Status = ResultStatusError
	} else if res.ExitCode != 0 {
		// Recorded for the summary, not acted upon: the launcher treats a
		// non-zero exit as a terminal state like any other.
		res.Status = ResultStatusFailed
	}

	logger.Debug("process finished", "pid", ps.Pid, "exitCode", res.ExitCode, "elapsed", res.Elapsed)

	switch res.Status {
	case ResultStatusSuccess:
		c.report(progress.EventCompleted, "process finished", res.ExitCode, nil)
	default:
		c.report(progress.EventFailed, "process failed", res.ExitCode, res.Error)
	}

	return Results{res}
}

// exitCodeOf reads the exit code, tolerating the nil state a failed Wait
// can return.
func exitCodeOf(state *os.ProcessState) int {
	if state == nil {
		return -1
	}

	return state.ExitCode()
}

// killPs kills the process, tolerating one that has already exited.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
