//go:build integration
// +build integration

package integration

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
)

var logger = log.NewLogger()

func checksumOf(bytes []byte) string {
	hash := sha256.New()
	hash.Write(bytes)
	return hex.EncodeToString(hash.Sum(nil))
}

func apiURL(t *testing.T) string {
	url := os.Getenv("UPLOAD_WIDGET_API_URL")
	if url == "" {
		t.Skip("UPLOAD_WIDGET_API_URL is not set")
	}
	return url
}
