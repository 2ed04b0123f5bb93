// Package process implements a fixed processing skeleton that defers its work to a pluggable step.
package process

import (
	"log/slog"
	"reflect"
)

// Step is the overridable unit of work invoked by a Processor.
type Step interface {
	DoSomething() error
}

// StepFunc adapts a plain function to the Step interface.
type StepFunc func() error

// DoSomething calls f.
func (f StepFunc) DoSomething() error {
	return f()
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used to trace step invocations at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor runs the fixed skeleton around a single Step.
type Processor struct {
	step   Step
	logger *slog.Logger
}

// New constructs a Processor for step. A nil step, including a typed nil pointer or func,
// falls back to DefaultStep on standard output.
func New(step Step, opts ...Option) *Processor {
	if isNil(step) {
		step = DefaultStep{}
	}
	p := &Processor{step: step}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessDoSomething invokes the step exactly once and returns its error unchanged.
func (p *Processor) ProcessDoSomething() error {
	if p.logger != nil {
		p.logger.Debug("invoking step", "step", stepName(p.step))
	}
	if err := p.step.DoSomething(); err != nil {
		return err
	}
	// Further skeleton steps go here.
	return nil
}

// isNil reports whether s is nil or holds a nil value of a nillable kind.
func isNil(s Step) bool {
	if s == nil {
		return true
	}
	switch v := reflect.ValueOf(s); v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Interface, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// stepName returns a short label for logging.
func stepName(s Step) string {
	switch s.(type) {
	case DefaultStep, *DefaultStep:
		return "default"
	case MessageStep, *MessageStep:
		return "message"
	case StepFunc:
		return "func"
	default:
		return "custom"
	}
}
