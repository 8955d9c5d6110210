package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	name    string
	content []byte
	openErr error
}

func (f memFile) Name() string { return f.name }
func (f memFile) Size() int64  { return int64(len(f.content)) }
func (f memFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

type receivedPart struct {
	filename    string
	contentType string
	content     string
}

func TestUpload(t *testing.T) {
	// Given
	var parts []receivedPart
	var expiration string
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(f)
			require.NoError(t, err)
			parts = append(parts, receivedPart{
				filename:    fh.Filename,
				contentType: fh.Header.Get("Content-Type"),
				content:     string(b),
			})
		}
		expiration = r.FormValue("expiration")

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]string{
			"filename":     "archive_abc123.zip",
			"short_code":   "abc123",
			"download_url": "/d/abc123",
		})
		require.NoError(t, err)
	}))
	defer svr.Close()

	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 32)...)
	params := UploadParams{
		Endpoint: svr.URL + "/upload",
		Files: []File{
			memFile{name: "notes.html", content: []byte("<p>hello</p>")},
			memFile{name: "pixel.bin", content: png},
		},
		Expiration: "7d",
	}

	// When
	resp, err := NewUploader(log.NewLogger()).Upload(context.Background(), params)

	// Then
	require.NoError(t, err)
	assert.Equal(t, UploadResponse{Filename: "archive_abc123.zip", ShortCode: "abc123", DownloadURL: "/d/abc123"}, resp)
	assert.Equal(t, "7d", expiration)
	require.Len(t, parts, 2)
	assert.Equal(t, "notes.html", parts[0].filename)
	assert.Equal(t, "<p>hello</p>", parts[0].content)
	assert.True(t, strings.HasPrefix(parts[0].contentType, "text/html"))
	assert.Equal(t, "pixel.bin", parts[1].filename)
	assert.Equal(t, "image/png", parts[1].contentType)
	assert.Equal(t, string(png), parts[1].content)
}

// zeroFile yields size zero bytes and counts how many were read from it.
type zeroFile struct {
	name string
	size int64
	read *int64
}

func (f zeroFile) Name() string { return f.name }
func (f zeroFile) Size() int64  { return f.size }
func (f zeroFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(&zeroReader{remaining: f.size, read: f.read}), nil
}

type zeroReader struct {
	remaining int64
	read      *int64
}

func (r *zeroReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}
	for i := range p {
		p[i] = 0
	}
	r.remaining -= int64(len(p))
	atomic.AddInt64(r.read, int64(len(p)))
	return len(p), nil
}

func TestUpload_StreamsBody(t *testing.T) {
	// Given
	const size = 32 << 20
	var read, readAtHandlerStart, received int64
	var contentLength int64
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		readAtHandlerStart = atomic.LoadInt64(&read)
		contentLength = r.ContentLength

		mr, err := r.MultipartReader()
		require.NoError(t, err)
		part, err := mr.NextPart()
		require.NoError(t, err)
		require.Equal(t, "big.bin", part.FileName())
		received, err = io.Copy(io.Discard, part)
		require.NoError(t, err)

		err = json.NewEncoder(w).Encode(map[string]string{"download_url": "/d/big"})
		require.NoError(t, err)
	}))
	defer svr.Close()

	params := UploadParams{
		Endpoint:   svr.URL + "/upload",
		Files:      []File{zeroFile{name: "big.bin", size: size, read: &read}},
		Expiration: "1d",
	}

	// When
	resp, err := NewUploader(log.NewLogger()).Upload(context.Background(), params)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "/d/big", resp.DownloadURL)
	assert.Equal(t, int64(size), received)
	assert.Equal(t, int64(-1), contentLength, "body is sent chunked")
	assert.Less(t, readAtHandlerStart, int64(size), "file was read completely before the request reached the server")
}

func TestUpload_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErrMsg string
	}{
		{
			name:       "Server error",
			status:     http.StatusInternalServerError,
			body:       "boom",
			wantErrMsg: "HTTP 500: boom",
		},
		{
			name:       "Client error",
			status:     http.StatusRequestEntityTooLarge,
			body:       "too large",
			wantErrMsg: "HTTP 413: too large",
		},
		{
			name:       "Missing download URL",
			status:     http.StatusOK,
			body:       `{"filename":"a.txt"}`,
			wantErrMsg: "response has no download_url",
		},
		{
			name:       "Invalid JSON",
			status:     http.StatusOK,
			body:       `not json`,
			wantErrMsg: "decode response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			var hits int32
			svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(tt.status)
				_, err := w.Write([]byte(tt.body))
				require.NoError(t, err)
			}))
			defer svr.Close()

			params := UploadParams{
				Endpoint:   svr.URL + "/upload",
				Files:      []File{memFile{name: "a.txt", content: []byte("a")}},
				Expiration: "never",
			}

			// When
			_, err := NewUploader(log.NewLogger()).Upload(context.Background(), params)

			// Then
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
			assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "failed uploads must not be retried")
		})
	}
}

func TestUpload_NetworkError(t *testing.T) {
	// Given
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := svr.URL + "/upload"
	svr.Close()

	params := UploadParams{
		Endpoint:   endpoint,
		Files:      []File{memFile{name: "a.txt", content: []byte("a")}},
		Expiration: "never",
	}

	// When
	_, err := NewUploader(log.NewLogger()).Upload(context.Background(), params)

	// Then
	require.Error(t, err)
}

func TestUpload_FileOpenError(t *testing.T) {
	// Given
	var hits int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer svr.Close()

	openErr := errors.New("permission denied")
	params := UploadParams{
		Endpoint:   svr.URL,
		Files:      []File{memFile{name: "secret.txt", openErr: openErr}},
		Expiration: "never",
	}

	// When
	_, err := NewUploader(log.NewLogger()).Upload(context.Background(), params)

	// Then
	require.ErrorIs(t, err, openErr)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

type trackedCloser struct {
	io.Reader
	closed *bool
}

func (c trackedCloser) Close() error {
	*c.closed = true
	return nil
}

type trackedFile struct {
	memFile
	closed *bool
}

func (f trackedFile) Open() (io.ReadCloser, error) {
	return trackedCloser{Reader: bytes.NewReader(f.content), closed: f.closed}, nil
}

func Test_openParts_ClosesOpenedFilesOnError(t *testing.T) {
	// Given
	var closed bool
	openErr := errors.New("permission denied")
	files := []File{
		trackedFile{memFile: memFile{name: "a.txt", content: []byte("a")}, closed: &closed},
		memFile{name: "b.txt", openErr: openErr},
	}

	// When
	parts, err := openParts(files, log.NewLogger())

	// Then
	require.ErrorIs(t, err, openErr)
	assert.Contains(t, err.Error(), "add b.txt")
	assert.Nil(t, parts)
	assert.True(t, closed)
}

func Test_validateParams(t *testing.T) {
	tests := []struct {
		name    string
		params  UploadParams
		wantErr bool
	}{
		{
			name:   "valid params",
			params: UploadParams{Endpoint: "http://127.0.0.1:8000/upload", Files: []File{memFile{name: "a"}}},
		},
		{
			name:    "empty endpoint",
			params:  UploadParams{Files: []File{memFile{name: "a"}}},
			wantErr: true,
		},
		{
			name:    "no files",
			params:  UploadParams{Endpoint: "http://127.0.0.1:8000/upload"},
			wantErr: true,
		},
		{
			name:    "nil file",
			params:  UploadParams{Endpoint: "http://127.0.0.1:8000/upload", Files: []File{nil}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateParams(tt.params)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateParams() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNoRetryPolicy(t *testing.T) {
	policy := noRetryPolicy(log.NewLogger())

	retry, err := policy(context.Background(), &http.Response{StatusCode: 500}, nil)
	assert.False(t, retry)
	assert.NoError(t, err)

	retry, err = policy(context.Background(), nil, errors.New("EOF"))
	assert.False(t, retry)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	retry, err = policy(ctx, nil, nil)
	assert.False(t, retry)
	assert.ErrorIs(t, err, context.Canceled)
}
