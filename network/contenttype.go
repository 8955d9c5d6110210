package network

import (
	"bytes"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

const (
	// filetype only needs the first 261 bytes to recognize every type it knows.
	sniffLen           = 261
	defaultContentType = "application/octet-stream"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// detectContentType reads the head of r to sniff its MIME type and returns a
// reader that still yields the full content.
func detectContentType(name string, r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]
	content := io.MultiReader(bytes.NewReader(head), r)

	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value, content, nil
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return byExt, content, nil
	}
	return defaultContentType, content, nil
}
