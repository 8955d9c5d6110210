package network

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"

	"github.com/bitrise-io/go-utils/v2/log"
)

var errBodyConsumed = errors.New("multipart body was already sent")

type filePart struct {
	name        string
	contentType string
	content     io.Reader
	closer      io.Closer
}

// openParts opens and sniffs every file up front, so a missing file fails the
// upload before any byte is sent.
func openParts(files []File, logger log.Logger) ([]filePart, error) {
	parts := make([]filePart, 0, len(files))
	for _, file := range files {
		part, err := openPart(file)
		if err != nil {
			closeParts(parts, logger)
			return nil, fmt.Errorf("add %s: %w", file.Name(), err)
		}
		logger.Debugf("Part %s: %s", part.name, part.contentType)
		parts = append(parts, part)
	}
	return parts, nil
}

func openPart(file File) (filePart, error) {
	rc, err := file.Open()
	if err != nil {
		return filePart{}, fmt.Errorf("open file: %w", err)
	}

	contentType, content, err := detectContentType(file.Name(), rc)
	if err != nil {
		if cerr := rc.Close(); cerr != nil {
			return filePart{}, fmt.Errorf("%w (close: %s)", err, cerr)
		}
		return filePart{}, err
	}

	return filePart{
		name:        file.Name(),
		contentType: contentType,
		content:     content,
		closer:      rc,
	}, nil
}

func closeParts(parts []filePart, logger log.Logger) {
	for _, part := range parts {
		if err := part.closer.Close(); err != nil {
			logger.Errorf("failed to close file: %s", err)
		}
	}
}

// multipartStream produces the request body through a pipe while the
// transport sends it. Only one body is ever produced.
type multipartStream struct {
	parts      []filePart
	expiration string
	boundary   string

	mu      sync.Mutex
	started bool
	pr      *io.PipeReader
	done    chan struct{}
}

func newMultipartStream(parts []filePart, expiration string) *multipartStream {
	return &multipartStream{
		parts:      parts,
		expiration: expiration,
		boundary:   multipart.NewWriter(io.Discard).Boundary(),
	}
}

func (s *multipartStream) contentType() string {
	return "multipart/form-data; boundary=" + s.boundary
}

// reader is the retryablehttp.ReaderFunc of the request. retryablehttp calls
// it when building the request and again per attempt; the pipe only starts on
// the first Read.
func (s *multipartStream) reader() (io.Reader, error) {
	return &lazyBody{start: s.start}, nil
}

func (s *multipartStream) start() *io.PipeReader {
	s.mu.Lock()
	defer s.mu.Unlock()

	pr, pw := io.Pipe()
	if s.started {
		_ = pw.CloseWithError(errBodyConsumed)
		return pr
	}
	s.started = true
	s.pr = pr
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		_ = pw.CloseWithError(s.write(pw))
	}()
	return pr
}

func (s *multipartStream) write(w io.Writer) error {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(s.boundary); err != nil {
		return err
	}

	for _, part := range s.parts {
		if err := writePart(mw, part); err != nil {
			return fmt.Errorf("add %s: %w", part.name, err)
		}
	}

	if err := mw.WriteField(expirationFieldName, s.expiration); err != nil {
		return err
	}
	return mw.Close()
}

// wait stops the writer, if it is still running, and blocks until it returns.
func (s *multipartStream) wait() {
	s.mu.Lock()
	pr, done := s.pr, s.done
	s.mu.Unlock()

	if pr == nil {
		return
	}
	_ = pr.Close()
	<-done
}

func writePart(w *multipart.Writer, part filePart) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, filesFieldName, escapeQuotes(part.name)))
	h.Set("Content-Type", part.contentType)

	dst, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, part.content)
	return err
}

// lazyBody defers starting the pipe until the transport reads the body.
// net/http may call Close concurrently with Read.
type lazyBody struct {
	start func() *io.PipeReader

	mu     sync.Mutex
	pr     *io.PipeReader
	closed bool
}

func (b *lazyBody) pipe() *io.PipeReader {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pr == nil && !b.closed {
		b.pr = b.start()
	}
	return b.pr
}

func (b *lazyBody) Read(p []byte) (int, error) {
	pr := b.pipe()
	if pr == nil {
		return 0, io.ErrClosedPipe
	}
	return pr.Read(p)
}

func (b *lazyBody) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.pr == nil {
		return nil
	}
	return b.pr.Close()
}
