package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw file bytes into source text for NewScanner. A UTF-8
// or UTF-16 byte order mark selects the encoding and is dropped; input
// without one is read as UTF-8. Line endings become "\n".
func Decode(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("decoding source: %w", err)
	}

	s := strings.ReplaceAll(string(out), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	return s, nil
}
