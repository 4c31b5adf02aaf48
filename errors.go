package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// ErrAlreadyReported means the failure already reached the user through an
// inherited stream, so nothing else should be printed.
var ErrAlreadyReported = errors.New("already reported")

// FsError wraps a failed filesystem or process operation.
type FsError struct {
	Op   string
	Path string
	To   string
	Err  error
}

func (e *FsError) Error() string {
	switch {
	case e.To != "":
		return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Path, e.To, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *FsError) Unwrap() error {
	return e.Err
}

// ToolError is a non-zero exit of a tool whose stderr was captured.
type ToolError struct {
	Tool   string
	Code   int
	Stderr []byte
}

func (e *ToolError) Error() string {
	if len(e.Stderr) == 0 {
		return fmt.Sprintf("%s failed with code: %d", e.Tool, e.Code)
	}
	return string(e.Stderr)
}

var errorPrefix = color.New(color.FgRed, color.Bold)

// Report writes err to w the way the user should see it.
func Report(w io.Writer, err error) {
	if err == nil || errors.Is(err, ErrAlreadyReported) {
		return
	}

	var toolErr *ToolError
	if errors.As(err, &toolErr) && len(toolErr.Stderr) > 0 {
		_, _ = w.Write(toolErr.Stderr)
		return
	}

	errorPrefix.Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

func mkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return &FsError{Op: "create directory", Path: path, Err: err}
	}
	return nil
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &FsError{Op: "canonicalize", Path: path, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &FsError{Op: "canonicalize", Path: path, Err: err}
	}
	return resolved, nil
}

func renameFile(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return &FsError{Op: "rename", Path: from, To: to, Err: err}
	}
	return nil
}

func copyFile(from, to string) error {
	wrap := func(err error) error {
		return &FsError{Op: "copy", Path: from, To: to, Err: err}
	}

	src, err := os.Open(from)
	if err != nil {
		return wrap(err)
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return wrap(err)
	}

	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		return wrap(err)
	}
	if err = dst.Close(); err != nil {
		return wrap(err)
	}
	return nil
}
