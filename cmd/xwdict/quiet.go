package main

import (
	"bytes"
	"io"
)

// warningsOnly drops log lines that are not warnings. The logger writes one
// complete line per call.
type warningsOnly struct {
	w io.Writer
}

func (q *warningsOnly) Write(p []byte) (int, error) {
	if !bytes.Contains(p, []byte("WARNING")) {
		return len(p), nil
	}
	return q.w.Write(p)
}
