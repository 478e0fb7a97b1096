package structure

import (
	"regexp"
	"strings"
)

// numberedSectionPattern marks a heading as a top-level section
// ("1. Overview", "2 Summary").
var numberedSectionPattern = regexp.MustCompile(`^\d+\.?\s+`)

// SectionCursor tracks the section and sub-section labels that apply to
// content produced after the most recent heading. It is initialized to
// (nil, nil) at document start, mutated only by Update, and never reset
// mid-document. The cursor is owned by the document assembler and threaded
// explicitly through the pipeline; block creation only reads it.
type SectionCursor struct {
	Section    *string
	SubSection *string
}

// Update advances the cursor for a line already classified as a heading.
// A numbered heading starts a new top-level section and clears the
// sub-section. Any other heading becomes a sub-section when a section is
// already open, otherwise it becomes the first section itself.
func (c *SectionCursor) Update(line string) {
	line = strings.TrimSpace(line)

	switch {
	case numberedSectionPattern.MatchString(line):
		c.Section = &line
		c.SubSection = nil
	case c.Section != nil:
		c.SubSection = &line
	default:
		c.Section = &line
	}
}

// Current returns the labels to stamp on a content block created now.
func (c *SectionCursor) Current() (section, subSection *string) {
	return c.Section, c.SubSection
}

// Snapshot returns a copy of the cursor state. The assembler records one per
// page so fallback-reconciled tables can be stamped with the labels that were
// active on their own page.
func (c *SectionCursor) Snapshot() SectionCursor {
	return SectionCursor{Section: c.Section, SubSection: c.SubSection}
}
