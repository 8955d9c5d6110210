package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (e.g. xclip, xsel or wl-copy on Linux).
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// Writer ...
type Writer interface {
	WriteText(text string) error
}

type system struct {
	unsupported func() bool
	writeAll    func(string) error
}

// System returns a Writer backed by the OS clipboard.
func System() Writer {
	return system{
		unsupported: func() bool { return clipboard.Unsupported },
		writeAll:    clipboard.WriteAll,
	}
}

func (s system) WriteText(text string) error {
	if s.unsupported() {
		return ErrUnsupported
	}
	return s.writeAll(text)
}
