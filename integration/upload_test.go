//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/artyrk/go-uploadwidget/internal"
	"github.com/artyrk/go-uploadwidget/network"
	"github.com/artyrk/go-uploadwidget/picker"
	"github.com/artyrk/go-uploadwidget/widget"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	// Given
	baseURL := apiURL(t)
	logger.EnableDebugLog(true)

	content := []byte("integration test content")
	testFile := filepath.Join(t.TempDir(), "integration.txt")
	require.NoError(t, os.WriteFile(testFile, content, 0o600))

	files, err := picker.NewFileProvider(internal.RealOS{}, picker.NewDownloader(), logger).
		Resolve(context.Background(), []string{testFile})
	require.NoError(t, err)

	w := widget.New(network.NewUploader(logger),
		widget.WithBaseOrigin(baseURL),
		widget.WithLogger(logger),
	)
	require.NoError(t, w.SelectFiles(files))
	require.NoError(t, w.SetExpiration(widget.ExpirationOneDay))

	// When
	err = w.Submit(context.Background())

	// Then
	require.NoError(t, err)
	assert.Equal(t, widget.ViewShowingResult, w.State().View)

	checksum, err := downloadShared(w.ShareLink())
	require.NoError(t, err)
	assert.Equal(t, checksumOf(content), checksum)
}

// downloadShared downloads the file behind a share link and returns its SHA256 checksum
func downloadShared(link string) (string, error) {
	client := retryablehttp.NewClient()

	resp, err := client.Get(link)
	if err != nil {
		return "", err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			panic(err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		logger.Errorf("HTTP status code: %d", resp.StatusCode)
		return "", fmt.Errorf("download %s: HTTP %d", link, resp.StatusCode)
	}

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return checksumOf(bytes), nil
}
