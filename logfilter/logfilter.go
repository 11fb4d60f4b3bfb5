// Package logfilter removes repeated warning lines from build logs.
package logfilter

import (
	"fmt"
	"os"
	"strings"
)

// DefaultMarker is the substring that identifies an MSBuild style warning
// line, e.g. "Foo.cs(12,5): warning CS8618: ...".
const DefaultMarker = ": warning "

// Dedup keeps the first occurrence of every distinct warning line and drops
// later exact duplicates. Other lines are always kept. Relative order is
// preserved.
func Dedup(lines []string, marker string) []string {
	seen := make(map[string]bool)

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(line, marker) {
			if seen[line] {
				continue
			}
			seen[line] = true
		}
		out = append(out, line)
	}

	return out
}

// DedupFile rewrites the file at path with duplicate warnings removed and
// reports how many lines were dropped. The file is read fully and closed
// before the result is written.
func DedupFile(path, marker string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(data)
	trailing := strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")

	var lines []string
	if text != "" || trailing {
		lines = strings.Split(text, "\n")
	}

	kept := Dedup(lines, marker)
	removed := len(lines) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	result := strings.Join(kept, "\n")
	if trailing {
		result += "\n"
	}

	if err := os.WriteFile(path, []byte(result), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}

	return removed, nil
}
