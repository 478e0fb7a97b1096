package structure

import (
	"strings"

	"github.com/docstruct/pdfstruct/internal/document"
)

// SegmentParagraphs splits a page's raw text into paragraph blocks, advancing
// the section cursor on every heading line it encounters.
//
// Lines are accumulated until a blank line or a heading flushes the buffer.
// Buffered lines are joined with single spaces and stamped with the cursor's
// labels at flush time. Heading lines advance the cursor but are never
// emitted as paragraphs, and a flush of an empty buffer is a no-op, so the
// result never contains empty paragraphs.
func SegmentParagraphs(text string, cursor *SectionCursor) []document.Paragraph {
	var paragraphs []document.Paragraph
	var buffer []string

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		section, subSection := cursor.Current()
		paragraphs = append(paragraphs, document.Paragraph{
			Section:    section,
			SubSection: subSection,
			Text:       strings.Join(buffer, " "),
		})
		buffer = buffer[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if IsHeading(line) {
			flush()
			cursor.Update(line)
			continue
		}

		buffer = append(buffer, line)
	}

	flush()
	return paragraphs
}
