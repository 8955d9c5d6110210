package widget

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/artyrk/go-uploadwidget/network"
	"github.com/stretchr/testify/mock"
)

type fakeFile struct {
	name string
	size int64
}

func (f fakeFile) Name() string { return f.name }
func (f fakeFile) Size() int64  { return f.size }
func (f fakeFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(make([]byte, f.size))), nil
}

func files(names ...string) []FileHandle {
	var handles []FileHandle
	for _, n := range names {
		handles = append(handles, fakeFile{name: n, size: 10})
	}
	return handles
}

type fakeUploader struct {
	mu      sync.Mutex
	calls   []network.UploadParams
	resp    network.UploadResponse
	err     error
	started chan struct{}
	release chan struct{}
}

func (u *fakeUploader) Upload(ctx context.Context, params network.UploadParams) (network.UploadResponse, error) {
	u.mu.Lock()
	u.calls = append(u.calls, params)
	u.mu.Unlock()

	if u.started != nil {
		u.started <- struct{}{}
	}
	if u.release != nil {
		<-u.release
	}
	return u.resp, u.err
}

func (u *fakeUploader) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(level Level, message string) {
	m.Called(level, message)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}
