// Package structure implements the document-structuring pipeline: heading
// classification, section tracking, paragraph segmentation, table
// normalization and reconciliation, chart detection, and page/document
// assembly. It consumes the raw per-page extraction results produced by
// internal/extract and emits the typed model in internal/document.
package structure

import (
	"regexp"
	"strings"
)

// Heading patterns, checked as a disjunction. A line is a heading if any of
// them matches the trimmed line:
//   - entirely uppercase letters and spaces
//   - a section number followed by an uppercase letter ("1. Introduction")
//   - uppercase start, no period, trailing colon ("Methods:")
//   - two consecutive title-case words (naive title-case heuristic)
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][A-Z\s]+$`),
	regexp.MustCompile(`^\d+\.?\s+[A-Z]`),
	regexp.MustCompile(`^[A-Z][^.]*:$`),
	regexp.MustCompile(`^\s*[A-Z][a-z]+\s+[A-Z]`),
}

// IsHeading reports whether a line of text looks like a heading. It is pure
// and total: empty or whitespace-only lines are never headings.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, pattern := range headingPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
