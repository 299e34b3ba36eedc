// Package lineup implements the lineup template and the classifier that
// reorganizes aggregated channel records into the templated category order.
package lineup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// genreMarker introduces a category line in both template and output
// documents.
const genreMarker = ",#genre#"

// Category is one template section: a category name plus the ordered
// channel names expected under it.
type Category struct {
	Name     string
	Channels []string
}

// Template is the ordered category layout driving classification. Order is
// significant: it fixes the output category order and, within a category,
// the scan order used for matching.
type Template []Category

// ParseTemplate reads a template document. Lines containing ",#genre#"
// introduce a category; subsequent non-empty lines are expected channel
// names, kept verbatim. Channel lines before the first category marker are
// ignored.
func ParseTemplate(r io.Reader) (Template, error) {
	var tpl Template
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.Contains(line, genreMarker) {
			name := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
			tpl = append(tpl, Category{Name: name})
			continue
		}
		if len(tpl) == 0 {
			continue
		}
		last := &tpl[len(tpl)-1]
		last.Channels = append(last.Channels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan template: %w", err)
	}
	return tpl, nil
}

// LoadTemplate reads the lineup template from path. A missing or unreadable
// template is a hard error: classification cannot proceed without it.
func LoadTemplate(path string) (Template, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer file.Close()
	return ParseTemplate(file)
}
