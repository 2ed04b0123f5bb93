package logging

import (
	"bytes"
	"log/slog"
)

// Writer is an io.Writer that turns each written line into an info record.
type Writer struct {
	logger *slog.Logger
	msg    string
}

// NewWriter returns a Writer logging every line under msg.
func NewWriter(logger *slog.Logger, msg string) *Writer {
	return &Writer{logger: logger, msg: msg}
}

// Write logs every non-empty line in p and always reports the full length as written.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	for line := range bytes.Lines(p) {
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 {
			w.logger.Info(w.msg, "line", string(line))
		}
	}
	return len(p), nil
}
