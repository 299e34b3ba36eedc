package lineup

import (
	"strings"

	"antenna/internal/playlist"
)

// CatchAllCategory collects every line no template entry claimed.
const CatchAllCategory = "其它"

// Section is one output category with the channel lines emitted under it.
type Section struct {
	Category string
	Lines    []string
}

// Document is a classified output document: template sections in template
// order, terminated by the catch-all section when any line went unclaimed.
type Document struct {
	Sections []Section
}

// Stats summarizes a classification for logging and run journaling.
type Stats struct {
	Matched   int
	Unmatched int
}

// Classify routes every record into exactly one section. For each template
// category the full serialized-line collection is scanned once per
// expected channel name, in template order, so multiple sources
// contributing the same channel all surface under the one slot, in
// aggregation order. Unclaimed lines land in the catch-all section in
// their original aggregation order.
//
// Matching is case-insensitive and anchored: the line's name field (up to
// the first comma) must equal the expected name as a whole, so "CCTV1"
// never claims a "CCTV10" line.
func Classify(tpl Template, records []playlist.Record) *Document {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, rec.Line())
	}

	matched := make(map[string]struct{})
	doc := &Document{Sections: make([]Section, 0, len(tpl)+1)}

	for _, category := range tpl {
		section := Section{Category: category.Name}
		for _, channel := range category.Channels {
			for _, line := range lines {
				if nameMatches(line, channel) {
					section.Lines = append(section.Lines, line)
					matched[line] = struct{}{}
				}
			}
		}
		doc.Sections = append(doc.Sections, section)
	}

	var others []string
	for _, line := range lines {
		if _, ok := matched[line]; !ok {
			others = append(others, line)
		}
	}
	if len(others) > 0 {
		doc.Sections = append(doc.Sections, Section{Category: CatchAllCategory, Lines: others})
	}
	return doc
}

// nameMatches reports whether the serialized line's name field equals the
// expected channel name, ignoring case. The name field ends at the first
// comma, which anchors the comparison to the whole field.
func nameMatches(line, channel string) bool {
	name, _, ok := strings.Cut(line, ",")
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(channel))
}

// Render joins all sections into the final document text: a ",#genre#"
// header per category, the channel lines beneath it, and a blank separator
// after each section. Trailing separators are trimmed.
func (d *Document) Render() string {
	var out []string
	for _, section := range d.Sections {
		out = append(out, section.Category+genreMarker)
		out = append(out, section.Lines...)
		out = append(out, "")
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// Stats counts the lines claimed by template categories and the lines that
// fell through to the catch-all section.
func (d *Document) Stats() Stats {
	var stats Stats
	for _, section := range d.Sections {
		if section.Category == CatchAllCategory {
			stats.Unmatched += len(section.Lines)
			continue
		}
		stats.Matched += len(section.Lines)
	}
	return stats
}
