package main

import "os"

// Host gives access to the process-wide state the dispatcher depends on.
type Host interface {
	Executable() (string, error)
	// Args returns the command-line arguments without the program name.
	Args() []string
	Getwd() (string, error)
}

type osHost struct{}

func (osHost) Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", &FsError{Op: "locate executable", Err: err}
	}
	return exe, nil
}

func (osHost) Args() []string {
	return os.Args[1:]
}

func (osHost) Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", &FsError{Op: "get current directory", Err: err}
	}
	return wd, nil
}
