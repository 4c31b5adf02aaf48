package main

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

var (
	applyingRulePrefix = []byte("Latexmk: applying rule ")
	allTargetsPrefix   = []byte("Latexmk: All targets ")
)

// ScanTypeset forwards latexmk output from src to dst line by line until it
// can tell whether latexmk actually ran the engine. It returns a reader
// holding whatever has not been forwarded yet.
func ScanTypeset(src io.Reader, dst io.Writer) (bool, io.Reader, error) {
	r := bufio.NewReader(src)
	atLineStart := true

	for {
		chunk, err := r.ReadSlice('\n')
		if len(chunk) > 0 {
			if _, werr := dst.Write(chunk); werr != nil {
				return false, r, &FsError{Op: "write output", Err: werr}
			}

			// Lines longer than the buffer come in several chunks; only the
			// first one can carry a marker.
			if atLineStart {
				if bytes.HasPrefix(chunk, applyingRulePrefix) {
					return true, r, nil
				}
				if bytes.HasPrefix(chunk, allTargetsPrefix) {
					return false, r, nil
				}
			}
			atLineStart = chunk[len(chunk)-1] == '\n'
		}

		switch {
		case err == nil, errors.Is(err, bufio.ErrBufferFull):
		case errors.Is(err, io.EOF):
			return false, r, nil
		default:
			return false, r, &FsError{Op: "read latexmk output", Err: err}
		}
	}
}
