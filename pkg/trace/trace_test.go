package trace

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracerLevels(t *testing.T) {
	// Arrange
	var buffer bytes.Buffer
	tracer := NewWriterTracer(&buffer, "engine", LogLevelVerbose)

	// Act
	tracer.Infof("loaded %d rows", 3)
	tracer.Debugf("frontier %d", 7)
	tracer.Tracef("pruned %v", "A1")
	tracer.Error(errors.New("boom"))

	// Assert
	assert.Equal(t, "engine: loaded 3 rows\nengine: frontier 7\nengine ERROR: boom\n", buffer.String())
}

func TestNormalLevelSkipsDebug(t *testing.T) {
	var buffer bytes.Buffer
	tracer := NewWriterTracer(&buffer, "", LogLevelNormal)

	tracer.Debugf("hidden")
	tracer.Infof("shown")

	assert.Equal(t, "shown\n", buffer.String())
	assert.False(t, tracer.IsVerbose())
}

func TestContextRoundTrip(t *testing.T) {
	tracer := Discard().WithPrefix("repl")
	ctx := WithContext(context.Background(), tracer)

	assert.Same(t, tracer, FromContext(ctx))
	assert.Equal(t, LogLevelNormal, FromContext(context.Background()).Level())
}
