package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentParagraphs_HeadingThenParagraphs(t *testing.T) {
	var cursor SectionCursor
	text := "1. Introduction\nThis is a test.\n\nMore text here."

	paragraphs := SegmentParagraphs(text, &cursor)

	require.Len(t, paragraphs, 2)

	require.NotNil(t, paragraphs[0].Section)
	assert.Equal(t, "1. Introduction", *paragraphs[0].Section)
	assert.Nil(t, paragraphs[0].SubSection)
	assert.Equal(t, "This is a test.", paragraphs[0].Text)

	require.NotNil(t, paragraphs[1].Section)
	assert.Equal(t, "1. Introduction", *paragraphs[1].Section)
	assert.Equal(t, "More text here.", paragraphs[1].Text)
}

func TestSegmentParagraphs_HeadingsAreNotEmitted(t *testing.T) {
	var cursor SectionCursor

	paragraphs := SegmentParagraphs("EXECUTIVE SUMMARY\n2. Methods", &cursor)

	assert.Empty(t, paragraphs)
	section, _ := cursor.Current()
	require.NotNil(t, section)
	assert.Equal(t, "2. Methods", *section)
}

func TestSegmentParagraphs_JoinsLinesWithSpaces(t *testing.T) {
	var cursor SectionCursor

	paragraphs := SegmentParagraphs("first line\nsecond line\nthird line", &cursor)

	require.Len(t, paragraphs, 1)
	assert.Equal(t, "first line second line third line", paragraphs[0].Text)
	assert.Nil(t, paragraphs[0].Section)
	assert.Nil(t, paragraphs[0].SubSection)
}

func TestSegmentParagraphs_BlankAndWhitespaceOnly(t *testing.T) {
	var cursor SectionCursor

	assert.Empty(t, SegmentParagraphs("", &cursor))
	assert.Empty(t, SegmentParagraphs("\n\n   \n\t\n", &cursor))
}

func TestSegmentParagraphs_SubSectionStamping(t *testing.T) {
	var cursor SectionCursor
	text := "1. Results\nOverall numbers.\nKey Findings:\nRevenue grew."

	paragraphs := SegmentParagraphs(text, &cursor)

	require.Len(t, paragraphs, 2)

	assert.Equal(t, "1. Results", *paragraphs[0].Section)
	assert.Nil(t, paragraphs[0].SubSection)

	assert.Equal(t, "1. Results", *paragraphs[1].Section)
	require.NotNil(t, paragraphs[1].SubSection)
	assert.Equal(t, "Key Findings:", *paragraphs[1].SubSection)
	assert.Equal(t, "Revenue grew.", paragraphs[1].Text)
}

func TestSegmentParagraphs_CursorPersistsAcrossCalls(t *testing.T) {
	var cursor SectionCursor

	first := SegmentParagraphs("1. Introduction\nOpening words.", &cursor)
	second := SegmentParagraphs("Continuation on the next page.", &cursor)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.NotNil(t, second[0].Section)
	assert.Equal(t, "1. Introduction", *second[0].Section)
}

func TestSegmentParagraphs_TrailingBufferIsFlushed(t *testing.T) {
	var cursor SectionCursor

	paragraphs := SegmentParagraphs("no trailing newline", &cursor)

	require.Len(t, paragraphs, 1)
	assert.Equal(t, "no trailing newline", paragraphs[0].Text)
}
