// Package mapping loads the channel alias table used to normalize raw
// playlist names before classification.
package mapping

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Table maps raw channel names to their canonical form. Keys are unique;
// ordering carries no significance. A table is loaded once per run and is
// read-only afterwards.
type Table map[string]string

// Canonical returns the canonical name for raw, or raw itself when no
// alias is recorded.
func (t Table) Canonical(raw string) string {
	if mapped, ok := t[raw]; ok {
		return mapped
	}
	return raw
}

// Parse reads alias lines of the form "old,new". The first comma splits,
// so canonical names may themselves contain commas. Lines without a comma
// are skipped rather than treated as errors.
func Parse(r io.Reader) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ",") {
			continue
		}
		oldName, newName, _ := strings.Cut(line, ",")
		oldName = strings.TrimSpace(oldName)
		if oldName == "" {
			continue
		}
		table[oldName] = strings.TrimSpace(newName)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mapping: %w", err)
	}
	return table, nil
}

// Load reads the alias table from path. A missing file degrades to an
// empty table so runs work without any mapping configured.
func Load(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer file.Close()
	return Parse(file)
}
