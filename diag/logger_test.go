package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := New(&out, &errOut)

	l.Notef("training %d tasks", 4)
	l.Warnf("field %q ignored", "gamma")

	assert.Equal(t, "training 4 tasks\n", out.String())
	assert.Equal(t, "field \"gamma\" ignored\n", errOut.String())
}

func TestFatalExitsEvenWhenQuiet(t *testing.T) {
	var code int
	var called bool
	l := New(new(bytes.Buffer), new(bytes.Buffer))
	l.SetExit(func(c int) {
		code = c
		called = true
	})

	l.Fatalf("no grid file")
	require.True(t, called, "expected Fatalf to invoke the exit hook")
	assert.Equal(t, 1, code)
}
