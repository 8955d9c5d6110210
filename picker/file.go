package picker

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/artyrk/go-uploadwidget/internal"
)

// ErrIsDirectory is returned when a source resolves to a directory.
var ErrIsDirectory = errors.New("is a directory")

// LocalFile is a file on the local disk. Its size is read once when it is
// picked; the content is only opened when uploading.
type LocalFile struct {
	path string
	size int64
	os   internal.OsProxy
}

// NewLocalFile ...
func NewLocalFile(osProxy internal.OsProxy, path string) (LocalFile, error) {
	info, err := osProxy.Stat(path)
	if err != nil {
		return LocalFile{}, err
	}
	if info.IsDir() {
		return LocalFile{}, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	return LocalFile{
		path: path,
		size: info.Size(),
		os:   osProxy,
	}, nil
}

// Name ...
func (f LocalFile) Name() string {
	return filepath.Base(f.path)
}

// Size ...
func (f LocalFile) Size() int64 {
	return f.size
}

// Path ...
func (f LocalFile) Path() string {
	return f.path
}

// Open ...
func (f LocalFile) Open() (io.ReadCloser, error) {
	file, err := f.os.Open(f.path)
	if err != nil {
		return nil, err
	}
	return file, nil
}
