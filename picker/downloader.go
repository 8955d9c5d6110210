package picker

import (
	"context"

	"github.com/melbahja/got"
)

// Downloader fetches a remote file to dest.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

type gotDownloader struct {
	client *got.Got
}

// NewDownloader ...
func NewDownloader() Downloader {
	return gotDownloader{client: got.New()}
}

func (d gotDownloader) Download(ctx context.Context, url, dest string) error {
	return d.client.Do(got.NewDownload(ctx, url, dest))
}
