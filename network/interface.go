package network

import (
	"context"
	"io"
)

// File is a user-selected file that can be sent as one multipart part.
type File interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Uploader ...
type Uploader interface {
	Upload(context.Context, UploadParams) (UploadResponse, error)
}
