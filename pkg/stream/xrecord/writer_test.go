package xrecord

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	require.NoError(t, w.Write(Record{Line: "a"}))
	require.NoError(t, w.WriteLine("b"))
	assert.Empty(t, sb.String(), "buffered until Flush")

	require.NoError(t, w.Flush())
	assert.Equal(t, "a\nb\n", sb.String())
	assert.Equal(t, 2, w.Count())
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriterStickyError(t *testing.T) {
	boom := errors.New("boom")
	w := NewWriter(errWriter{err: boom})

	// 缓冲区未满时写入成功，错误在 Flush 时暴露
	require.NoError(t, w.WriteLine("a"))
	assert.ErrorIs(t, w.Flush(), boom)
	assert.ErrorIs(t, w.WriteLine("b"), boom)
	assert.ErrorIs(t, w.Flush(), boom)
}
