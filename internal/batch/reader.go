package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one term from a batch file
type Entry struct {
	Term string
	Line int
}

// ReadBatchFile reads terms from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseEntries(string(content)), nil
}

// ParseEntries parses batch file content
func ParseEntries(content string) []Entry {
	var entries []Entry

	content = strings.TrimPrefix(content, "\ufeff")
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Term: line, Line: i + 1})
	}

	return entries
}
