package picker

import (
	"strings"

	"github.com/mattn/go-shellwords"
)

// ParseDrop splits the text a terminal inserts when files are dragged onto
// it. Terminals either paste shell-escaped paths separated by spaces or a
// text/uri-list with one file:// URI per line.
func ParseDrop(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if uris, ok := uriList(text); ok {
		return uris, nil
	}
	return shellwords.Parse(text)
}

func uriList(text string) ([]string, bool) {
	var uris []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, fileScheme) {
			return nil, false
		}
		uris = append(uris, line)
	}
	return uris, len(uris) > 0
}
