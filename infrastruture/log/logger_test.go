package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("rejects an empty prefix", func(t *testing.T) {
		_, err := New("  ", "", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyPrefix)
	})

	t.Run("writes prefix, level and message", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "\033[36m", &buf)
		require.NoError(t, err)

		l.Info("engine started")
		l.Warning("slow subscriber")
		l.Error("boom")

		out := buf.String()
		assert.Contains(t, out, "\033[36m[APP]\033[0m")
		assert.Contains(t, out, "[INFO]\033[0m engine started")
		assert.Contains(t, out, "[WARNING]\033[0m slow subscriber")
		assert.Contains(t, out, "[ERROR]\033[0m boom")
		assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
	})
}
