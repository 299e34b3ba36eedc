// Package sources loads the remote playlist source list.
package sources

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Parse reads one source URL per line. Blank lines and "#" comments are
// ignored, as is any line that does not start with an http(s) scheme.
func Parse(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "http") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// Load reads the source list from path. A missing, unreadable, or empty
// file falls back to the single fallback URL so a run always has exactly
// one source to try. The second return reports whether the fallback was
// used.
func Load(path, fallback string) ([]string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return []string{fallback}, true
	}
	defer file.Close()

	urls, err := Parse(file)
	if err != nil || len(urls) == 0 {
		return []string{fallback}, true
	}
	return urls, false
}
