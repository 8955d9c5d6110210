package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_WriteText(t *testing.T) {
	t.Run("Writes text", func(t *testing.T) {
		var written string
		w := system{
			unsupported: func() bool { return false },
			writeAll: func(s string) error {
				written = s
				return nil
			},
		}

		require.NoError(t, w.WriteText("http://127.0.0.1:8000/d/abc123"))
		assert.Equal(t, "http://127.0.0.1:8000/d/abc123", written)
	})

	t.Run("Unsupported", func(t *testing.T) {
		w := system{
			unsupported: func() bool { return true },
			writeAll: func(string) error {
				t.Fatal("must not write")
				return nil
			},
		}

		require.ErrorIs(t, w.WriteText("x"), ErrUnsupported)
	})

	t.Run("Write error", func(t *testing.T) {
		writeErr := errors.New("exit status 1")
		w := system{
			unsupported: func() bool { return false },
			writeAll:    func(string) error { return writeErr },
		}

		require.ErrorIs(t, w.WriteText("x"), writeErr)
	})
}
