// Package ingestion turns uploaded resume files into plain text suitable for
// keyword extraction.
package ingestion

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`[ \t]{2,}`)
var multiBlank = regexp.MustCompile(`\n{3,}`)

// CleanText normalizes extracted text: line endings become LF, runs of
// spaces/tabs collapse to one space, and at most two consecutive blank lines
// are kept. Keyword extraction only needs term presence, so structure beyond
// that is not preserved.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = multiSpace.ReplaceAllString(strings.TrimRight(line, " \t"), " ")
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = multiBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
