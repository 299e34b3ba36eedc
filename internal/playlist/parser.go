// Package playlist parses M3U playlist documents into channel records.
//
// Entries are recognized as an #EXTINF metadata line followed immediately
// by a URL line. Supported metadata attributes are group-title and
// tvg-name; the display text after the last comma serves as the name
// fallback. Malformed entries are skipped silently — a document with zero
// valid entries parses to an empty result, not an error.
package playlist

import (
	"regexp"
	"strings"

	"antenna/internal/mapping"
)

// DefaultGroup is assigned to entries seen before any explicit group-title.
const DefaultGroup = "未分组"

var (
	groupTitlePattern = regexp.MustCompile(`group-title="([^"]*)"`)
	tvgNamePattern    = regexp.MustCompile(`tvg-name="([^"]*)"`)
)

// Parse converts one raw playlist document into channel records, applying
// the alias table to every extracted name. Records are bucketed by group:
// output preserves first-seen group order and, within a group, first-seen
// entry order, so a group's entries stay together even when the document
// interleaves them.
//
// The group default is sticky: an entry without an explicit group-title
// inherits the group of the most recently emitted entry, starting from
// DefaultGroup until any entry establishes one.
func Parse(raw string, table mapping.Table) []Record {
	lines := strings.Split(raw, "\n")
	currentGroup := DefaultGroup

	var groupOrder []string
	buckets := make(map[string][]Record)

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "#EXTINF:") {
			continue
		}

		group := extractGroup(line, currentGroup)
		name := table.Canonical(extractName(line))

		if i+1 >= len(lines) {
			continue
		}
		url := strings.TrimSpace(lines[i+1])
		if url == "" || strings.HasPrefix(url, "#") {
			continue
		}

		if _, seen := buckets[group]; !seen {
			groupOrder = append(groupOrder, group)
		}
		buckets[group] = append(buckets[group], Record{Group: group, Name: name, URL: url})
		currentGroup = group
	}

	var records []Record
	for _, group := range groupOrder {
		records = append(records, buckets[group]...)
	}
	return records
}

// extractGroup returns the group-title attribute value when present,
// falling back to the sticky current group.
func extractGroup(line, current string) string {
	if m := groupTitlePattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return current
}

// extractName returns the tvg-name attribute value when present, falling
// back to the display text after the last comma of the metadata line.
func extractName(line string) string {
	if m := tvgNamePattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	parts := strings.Split(line, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
