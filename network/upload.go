package network

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/retryhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/artyrk/go-uploadwidget/network"

// UploadParams ...
type UploadParams struct {
	Endpoint   string
	Files      []File
	Expiration string
}

// UploadResponse is what the backend returns for a stored upload.
// DownloadURL is a path relative to the serving origin, e.g. /d/abc123.
type UploadResponse struct {
	Filename    string
	ShortCode   string
	DownloadURL string
}

type uploader struct {
	client apiClient
	logger log.Logger
}

// NewUploader returns an Uploader that sends every selection as a single
// multipart POST. Failed requests are never retried.
func NewUploader(logger log.Logger) Uploader {
	return uploader{
		client: newAPIClient(newHTTPClient(logger), logger),
		logger: logger,
	}
}

// Upload ...
func (u uploader) Upload(ctx context.Context, params UploadParams) (UploadResponse, error) {
	if err := validateParams(params); err != nil {
		return UploadResponse{}, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "upload")
	defer span.End()
	span.SetAttributes(
		attribute.Int("upload.file_count", len(params.Files)),
		attribute.String("upload.expiration", params.Expiration),
	)

	u.logger.Debugf("Uploading %d file(s) to %s (expiration: %s)", len(params.Files), params.Endpoint, params.Expiration)
	resp, err := u.client.upload(ctx, params.Endpoint, params.Files, params.Expiration)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return UploadResponse{}, fmt.Errorf("failed to upload files: %w", err)
	}
	u.logger.Debugf("Upload stored as %s", resp.DownloadURL)

	return UploadResponse{
		Filename:    resp.Filename,
		ShortCode:   resp.ShortCode,
		DownloadURL: resp.DownloadURL,
	}, nil
}

func validateParams(params UploadParams) error {
	if params.Endpoint == "" {
		return fmt.Errorf("upload endpoint is empty")
	}
	if len(params.Files) == 0 {
		return fmt.Errorf("file list is empty")
	}
	for i, f := range params.Files {
		if f == nil {
			return fmt.Errorf("file %d is nil", i)
		}
	}
	return nil
}

func newHTTPClient(logger log.Logger) *retryablehttp.Client {
	client := retryhttp.NewClient(logger)
	client.RetryMax = 0
	client.CheckRetry = noRetryPolicy(logger)
	return client
}

func noRetryPolicy(logger log.Logger) retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, uploadErr error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		logger.Debugf("CheckRetry: retry=false ; uploadErr=%+v", uploadErr)
		return false, nil
	}
}
