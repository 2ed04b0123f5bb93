package process

import (
	"fmt"
	"io"
	"os"
)

// DefaultMessage is the line written by DefaultStep.
const DefaultMessage = "Hello World"

// DefaultStep writes DefaultMessage followed by a newline.
type DefaultStep struct {
	// Out is the destination; os.Stdout when nil.
	Out io.Writer
}

// DoSomething writes the default line.
func (s DefaultStep) DoSomething() error {
	return writeLine(s.Out, DefaultMessage)
}

// MessageStep replaces the default behavior with a custom line.
type MessageStep struct {
	// Out is the destination; os.Stdout when nil.
	Out io.Writer
	// Text is written verbatim, followed by a newline.
	Text string
}

// DoSomething writes s.Text.
func (s MessageStep) DoSomething() error {
	return writeLine(s.Out, s.Text)
}

func writeLine(w io.Writer, text string) error {
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
