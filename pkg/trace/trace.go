package trace

import (
	"context"
	"fmt"
	"io"
	"log"
)

// LogLevel represents tracing verbosity
type LogLevel int

const (
	// LogLevelNormal prints user-facing messages only
	LogLevelNormal LogLevel = iota
	// LogLevelVerbose adds per-step progress such as frontier sizes
	LogLevelVerbose
	// LogLevelTrace adds every pruning decision
	LogLevelTrace
)

type tracerKeyType string

const tracerKey tracerKeyType = "tracer"

// Tracer is a leveled logger on top of the standard log package
type Tracer struct {
	prefix string
	level  LogLevel
	logger *log.Logger
}

// NewTracer returns a tracer writing through the standard logger
func NewTracer(prefix string, level LogLevel) *Tracer {
	return &Tracer{
		prefix: prefix,
		level:  level,
		logger: log.Default(),
	}
}

// NewWriterTracer returns a tracer writing to w without timestamps
func NewWriterTracer(w io.Writer, prefix string, level LogLevel) *Tracer {
	return &Tracer{
		prefix: prefix,
		level:  level,
		logger: log.New(w, "", 0),
	}
}

// Discard returns a tracer that drops every message
func Discard() *Tracer {
	return NewWriterTracer(io.Discard, "", LogLevelNormal)
}

// WithContext stores the tracer in ctx
func WithContext(ctx context.Context, tracer *Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// FromContext extracts the tracer from ctx, falling back to a normal-level one
func FromContext(ctx context.Context) *Tracer {
	if tracer, ok := ctx.Value(tracerKey).(*Tracer); ok {
		return tracer
	}
	return NewTracer("", LogLevelNormal)
}

// WithPrefix returns a tracer sharing the level and output under another prefix
func (t *Tracer) WithPrefix(prefix string) *Tracer {
	return &Tracer{
		prefix: prefix,
		level:  t.level,
		logger: t.logger,
	}
}

func (t *Tracer) Level() LogLevel {
	return t.level
}

func (t *Tracer) IsVerbose() bool {
	return t.level >= LogLevelVerbose
}

func (t *Tracer) Infof(format string, args ...any) {
	t.output("", format, args...)
}

// Debugf logs only when the level is at least verbose
func (t *Tracer) Debugf(format string, args ...any) {
	if t.level < LogLevelVerbose {
		return
	}
	t.output("", format, args...)
}

// Tracef logs only at the trace level
func (t *Tracer) Tracef(format string, args ...any) {
	if t.level < LogLevelTrace {
		return
	}
	t.output("TRACE", format, args...)
}

func (t *Tracer) Error(err error) {
	t.output("ERROR", "%v", err)
}

func (t *Tracer) output(tag, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case t.prefix != "" && tag != "":
		t.logger.Printf("%s %s: %s", t.prefix, tag, msg)
	case t.prefix != "":
		t.logger.Printf("%s: %s", t.prefix, msg)
	case tag != "":
		t.logger.Printf("%s: %s", tag, msg)
	default:
		t.logger.Print(msg)
	}
}
