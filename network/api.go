package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	filesFieldName      = "files"
	expirationFieldName = "expiration"
)

type uploadResponse struct {
	Filename    string `json:"filename"`
	ShortCode   string `json:"short_code"`
	DownloadURL string `json:"download_url"`
}

type apiClient struct {
	httpClient *retryablehttp.Client
	logger     log.Logger
}

func newAPIClient(client *retryablehttp.Client, logger log.Logger) apiClient {
	return apiClient{
		httpClient: client,
		logger:     logger,
	}
}

func (c apiClient) upload(ctx context.Context, endpoint string, files []File, expiration string) (uploadResponse, error) {
	parts, err := openParts(files, c.logger)
	if err != nil {
		return uploadResponse{}, err
	}
	defer closeParts(parts, c.logger)

	body := newMultipartStream(parts, expiration)
	defer body.wait()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, retryablehttp.ReaderFunc(body.reader))
	if err != nil {
		return uploadResponse{}, err
	}
	req.Header.Set("Content-Type", body.contentType())
	req.Header.Set("Accept", "application/json")

	dump, err := httputil.DumpRequest(req.Request, false)
	if err != nil {
		c.logger.Warnf("error while dumping request: %s", err)
	}
	c.logger.Debugf("Upload request dump: %s", string(dump))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return uploadResponse{}, err
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			c.logger.Printf(err.Error())
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return uploadResponse{}, unwrapError(resp)
	}

	var response uploadResponse
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return uploadResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if response.DownloadURL == "" {
		return uploadResponse{}, fmt.Errorf("response has no download_url")
	}

	return response, nil
}

func unwrapError(resp *http.Response) error {
	errorResp, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, errorResp)
}
