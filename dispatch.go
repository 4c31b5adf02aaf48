package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/fatih/color"
)

type outputMode int

const (
	// Tool stdout is discarded and stderr captured into a ToolError.
	modeQuiet outputMode = iota
	// Tool output goes straight to our stderr.
	modeInherit
)

// Dispatcher runs latexmk and, when it typeset something, the diff pipeline.
type Dispatcher struct {
	Param  *Param
	Host   Host
	Stdout io.Writer
	Stderr io.Writer
	Debug  bool
	// Stop is closed on interrupt; running tools are killed.
	Stop <-chan struct{}

	stdoutLock sync.Mutex
	stderrLock sync.Mutex
}

func NewDispatcher(param *Param, host Host, stdout, stderr io.Writer) *Dispatcher {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Dispatcher{
		Param:  param,
		Host:   host,
		Stdout: stdout,
		Stderr: stderr,
		Debug:  param.LatexmkOpts.Verbose,
	}
}

var logPrefix = color.New(color.FgCyan)

func (d *Dispatcher) logf(format string, args ...any) {
	if !d.Debug {
		return
	}
	msg := logPrefix.Sprint("[latexdiffmk]: ") + fmt.Sprintf(format, args...)
	_, _ = d.errWriter().Write([]byte(msg))
}

// Write serializes writes to Stdout, which is shared with the goroutine
// forwarding latexmk output.
func (d *Dispatcher) Write(p []byte) (int, error) {
	d.stdoutLock.Lock()
	defer d.stdoutLock.Unlock()
	return d.Stdout.Write(p)
}

type stderrWriter struct {
	d *Dispatcher
}

func (w stderrWriter) Write(p []byte) (int, error) {
	w.d.stderrLock.Lock()
	defer w.d.stderrLock.Unlock()
	return w.d.Stderr.Write(p)
}

// errWriter is what tools and logs write stderr to. A file is handed to
// child processes as is; anything else is shared with exec's copy
// goroutines and needs the lock.
func (d *Dispatcher) errWriter() io.Writer {
	if f, ok := d.Stderr.(*os.File); ok {
		return f
	}
	return stderrWriter{d}
}

// killOnStop kills cmd's process when Stop is closed, until the returned
// function is called.
func (d *Dispatcher) killOnStop(cmd *exec.Cmd) func() {
	if d.Stop == nil {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-d.Stop:
			d.logf("interrupted, killing %s\n", cmd.Path)
			_ = cmd.Process.Kill()
		case <-done:
		}
	}()
	return func() { close(done) }
}

// Run performs the whole invocation and returns the exit code. A non-nil
// error still has to be shown to the user.
func (d *Dispatcher) Run() (int, error) {
	if d.Param.DiffOnly {
		d.logf("running diff pipeline only\n")
		err := d.diff(modeInherit)
		if err != nil {
			return 1, err
		}
		return 0, nil
	}

	mk := d.Param.PrimaryLatexmk()
	cmd, err := mk.Command()
	if err != nil {
		return 1, err
	}
	cmd.Stderr = d.errWriter()
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 1, &FsError{Op: "open latexmk output", Err: err}
	}

	d.logf("starting %s\n", cmd.String())
	err = cmd.Start()
	if err != nil {
		return 1, &FsError{Op: "spawn", Path: cmd.Path, Err: err}
	}
	stopWatching := d.killOnStop(cmd)
	defer stopWatching()

	typeset, rest, err := ScanTypeset(stdout, d)
	if err != nil {
		abort(cmd)
		return 1, err
	}
	d.logf("typeset occurred: %v\n", typeset)

	if !typeset || d.Param.AsyncDiff {
		if typeset {
			err = d.spawnDiffOnly()
			if err != nil {
				abort(cmd)
				return 1, err
			}
		}

		_, err = io.Copy(d, rest)
		if err != nil {
			abort(cmd)
			return 1, &FsError{Op: "forward latexmk output", Err: err}
		}

		code, err := d.finishPrimary(cmd, mk)
		if err == nil && d.Param.LatexmkOpts.Synctex {
			// Editors only refresh their SyncTeX state after seeing this line.
			fmt.Fprintf(d, "Output written on dummy.pdf (for SyncTeX refresh on %q).\n", d.Param.Doc)
		}
		return code, err
	}

	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		// Losing the tail of the log is harmless, but latexmk must not
		// block on a full pipe.
		_, err := io.Copy(d, rest)
		if err != nil {
			_, _ = io.Copy(io.Discard, rest)
		}
	}()

	diffErr := d.diff(modeQuiet)

	// cmd.Wait closes the pipe, so the copy has to drain it first.
	<-forwarded
	code, err := d.finishPrimary(cmd, mk)
	if err != nil || code != 0 {
		if diffErr != nil {
			d.logf("suppressed diff failure: %v\n", diffErr)
		}
		return code, err
	}
	return code, diffErr
}

// abort kills a latexmk whose output nobody reads anymore and reaps it.
func abort(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}

// finishPrimary waits for latexmk and delivers its PDF if it succeeded.
// latexmk's stderr was inherited, so its failures need no extra report.
func (d *Dispatcher) finishPrimary(cmd *exec.Cmd, mk *Latexmk) (int, error) {
	err := cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code <= 0 {
				code = 1
			}
			d.logf("latexmk failed with code: %d\n", code)
			return code, nil
		}
		return 1, &FsError{Op: "wait", Path: cmd.Path, Err: err}
	}

	err = mk.Relocate()
	if err != nil {
		return 1, err
	}
	d.logf("%s.pdf delivered to %s\n", mk.Doc, mk.OutDir)
	return 0, nil
}

func (d *Dispatcher) runTool(cmd *exec.Cmd, tool string, mode outputMode) error {
	var stderr bytes.Buffer
	switch mode {
	case modeQuiet:
		cmd.Stdout = nil
		cmd.Stderr = &stderr
	case modeInherit:
		w := d.errWriter()
		cmd.Stdout = w
		cmd.Stderr = w
	}

	d.logf("running %s\n", cmd.String())
	err := cmd.Start()
	if err != nil {
		return &FsError{Op: "spawn", Path: cmd.Path, Err: err}
	}
	stopWatching := d.killOnStop(cmd)
	err = cmd.Wait()
	stopWatching()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &FsError{Op: "wait", Path: cmd.Path, Err: err}
	}

	code := exitErr.ExitCode()
	if mode == modeInherit {
		return fmt.Errorf("%s failed with code: %d: %w", tool, code, ErrAlreadyReported)
	}
	return &ToolError{Tool: tool, Code: code, Stderr: stderr.Bytes()}
}

// spawnDiffOnly starts this executable again with --diff-only and does not
// wait for it.
func (d *Dispatcher) spawnDiffOnly() error {
	exe, err := d.Host.Executable()
	if err != nil {
		return err
	}

	args := append([]string{"--diff-only"}, d.Host.Args()...)
	cmd := exec.Command(exe, args...)
	if f, ok := d.Stdout.(*os.File); ok {
		cmd.Stdout = f
	}
	if f, ok := d.Stderr.(*os.File); ok {
		cmd.Stderr = f
	}
	detach(cmd)

	d.logf("spawning %s\n", cmd.String())
	err = cmd.Start()
	if err != nil {
		return &FsError{Op: "spawn", Path: exe, Err: err}
	}
	return cmd.Process.Release()
}
