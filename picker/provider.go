package picker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/artyrk/go-uploadwidget/internal"
	"github.com/artyrk/go-uploadwidget/network"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bmatcuk/doublestar/v4"
)

const (
	fileScheme          = "file://"
	defaultDownloadName = "download"
)

// FileProvider turns user input (paths, file:// URIs, glob patterns and
// http(s) URLs) into files that can be uploaded.
type FileProvider interface {
	Resolve(ctx context.Context, sources []string) ([]network.File, error)
	// Cleanup removes the downloads of remote sources. Files returned by
	// Resolve for those sources are gone afterwards.
	Cleanup() error
}

type fileProvider struct {
	os         internal.OsProxy
	downloader Downloader
	logger     log.Logger

	mu      sync.Mutex
	tmpDirs []string
}

// NewFileProvider ...
func NewFileProvider(osProxy internal.OsProxy, downloader Downloader, logger log.Logger) FileProvider {
	return &fileProvider{
		os:         osProxy,
		downloader: downloader,
		logger:     logger,
	}
}

// NewDefaultFileProvider uses the real file system and downloads remote
// sources with got.
func NewDefaultFileProvider(logger log.Logger) FileProvider {
	return NewFileProvider(internal.RealOS{}, NewDownloader(), logger)
}

// Resolve keeps the order of sources. A glob without matches is skipped;
// any other source that cannot be resolved fails the whole call.
func (p *fileProvider) Resolve(ctx context.Context, sources []string) ([]network.File, error) {
	var paths []string
	for _, src := range sources {
		resolved, err := p.localPaths(ctx, src)
		if err != nil {
			return nil, err
		}
		paths = append(paths, resolved...)
	}

	files := make([]network.File, 0, len(paths))
	for _, pth := range paths {
		f, err := NewLocalFile(p.os, pth)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (p *fileProvider) localPaths(ctx context.Context, src string) ([]string, error) {
	switch {
	case strings.HasPrefix(src, fileScheme):
		pth, err := p.trimmedFilePath(src)
		if err != nil {
			return nil, err
		}
		return []string{pth}, nil
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		pth, err := p.downloadToLocalPath(ctx, src)
		if err != nil {
			return nil, err
		}
		return []string{pth}, nil
	case strings.Contains(src, "*"):
		return p.expandPattern(src)
	default:
		pth, err := p.os.Abs(src)
		if err != nil {
			return nil, err
		}
		return []string{pth}, nil
	}
}

// trimmedFilePath removes the file:// prefix and decodes the URI path.
func (p *fileProvider) trimmedFilePath(src string) (string, error) {
	pth := strings.TrimPrefix(src, fileScheme)
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		pth = u.Path
	}
	return p.os.Abs(pth)
}

func (p *fileProvider) expandPattern(pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(pattern)
	absBase, err := p.os.Abs(base)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(p.os.DirFS(absBase), rest, doublestar.WithNoFollow())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		p.logger.Warnf("No match for pattern: %s", pattern)
		return nil, nil
	}

	var paths []string
	for _, match := range matches {
		pth := filepath.Join(absBase, match)
		info, err := p.os.Stat(pth)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			p.logger.Debugf("Skipping directory %s matched by %s", pth, pattern)
			continue
		}
		paths = append(paths, pth)
	}
	return paths, nil
}

func (p *fileProvider) downloadToLocalPath(ctx context.Context, src string) (string, error) {
	fileName, err := fileNameFromURL(src)
	if err != nil {
		return "", fmt.Errorf("failed to extract filename from URL %s: %w", src, err)
	}

	tmpDir, err := p.os.MkdirTemp("", "picker")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	localPath := filepath.Join(tmpDir, fileName)
	p.logger.Debugf("Downloading %s to %s", src, localPath)
	if err := p.downloader.Download(ctx, src, localPath); err != nil {
		if rmErr := p.os.RemoveAll(tmpDir); rmErr != nil {
			p.logger.Warnf("Failed to remove %s: %s", tmpDir, rmErr)
		}
		return "", fmt.Errorf("failed to download file from %s: %w", src, err)
	}

	p.mu.Lock()
	p.tmpDirs = append(p.tmpDirs, tmpDir)
	p.mu.Unlock()
	return localPath, nil
}

func (p *fileProvider) Cleanup() error {
	p.mu.Lock()
	dirs := p.tmpDirs
	p.tmpDirs = nil
	p.mu.Unlock()

	var errs []error
	for _, dir := range dirs {
		p.logger.Debugf("Removing %s", dir)
		if err := p.os.RemoveAll(dir); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}

func fileNameFromURL(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", err
	}
	name := filepath.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return defaultDownloadName, nil
	}
	return name, nil
}
