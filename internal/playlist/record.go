package playlist

// Record is one channel entry extracted from a playlist document. Name is
// the normalized (post-mapping) channel name. Records are immutable once
// emitted by the parser.
type Record struct {
	Group string
	Name  string
	URL   string
}

// Line renders the record in the canonical "name,url" form. This serialized
// line is the unit of both classification matching and final output.
func (r Record) Line() string {
	return r.Name + "," + r.URL
}
