// Package document defines the structured document model produced by the
// parsing pipeline: an ordered sequence of pages, each holding typed content
// blocks (paragraph, table, chart) tagged with the section and sub-section
// they belong to.
package document

import (
	"encoding/json"
	"fmt"
)

// BlockType discriminates the content block variants in the persisted format.
type BlockType string

const (
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeTable     BlockType = "table"
	BlockTypeChart     BlockType = "chart"
)

// ContentBlock is the closed set of block variants a page can contain.
// Implementations are Paragraph, Table, and Chart; the set is sealed so
// serialization and consumption sites can handle every variant exhaustively.
type ContentBlock interface {
	BlockType() BlockType

	// Section and SubSection return the labels stamped on the block when it
	// was created. Either may be nil when no heading had been seen yet.
	SectionLabels() (section, subSection *string)
}

// Paragraph is a run of whitespace-normalized text between blank-line or
// heading boundaries. Text is never empty.
type Paragraph struct {
	Section    *string `json:"section"`
	SubSection *string `json:"sub_section"`
	Text       string  `json:"text"`
}

// Table is a labeled table. Data holds ordered rows of cell strings; rows may
// have differing lengths, no rectangularity is enforced.
type Table struct {
	Section     *string    `json:"section"`
	SubSection  *string    `json:"sub_section"`
	Description string     `json:"description"`
	Data        [][]string `json:"table_data"`
}

// Chart is an image that passed the chart size heuristic.
type Chart struct {
	Section     *string   `json:"section"`
	SubSection  *string   `json:"sub_section"`
	Description string    `json:"description"`
	Image       ImageInfo `json:"image_info"`
}

// ImageInfo carries the geometry reported by the extraction backend.
// Missing fields default to zero.
type ImageInfo struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X0     float64 `json:"x0"`
	Y0     float64 `json:"y0"`
}

// BlockType implementations for the sealed variant set.

func (p Paragraph) BlockType() BlockType { return BlockTypeParagraph }

func (t Table) BlockType() BlockType { return BlockTypeTable }

func (c Chart) BlockType() BlockType { return BlockTypeChart }

func (p Paragraph) SectionLabels() (section, subSection *string) { return p.Section, p.SubSection }

func (t Table) SectionLabels() (section, subSection *string) { return t.Section, t.SubSection }

func (c Chart) SectionLabels() (section, subSection *string) { return c.Section, c.SubSection }

// Page holds one source page's content in extraction order: paragraphs first,
// then tables, then charts, as produced by the page assembler.
type Page struct {
	PageNumber int            `json:"page_number"`
	Content    []ContentBlock `json:"content"`
}

// Document is the final model. Page numbers are contiguous starting at 1 and
// match source page order.
type Document struct {
	Pages []Page `json:"pages"`
}

// TableCount returns the number of table blocks on the page. The fallback
// reconciler uses it to decide whether an ordinal slot is already populated.
func (p Page) TableCount() int {
	n := 0
	for _, block := range p.Content {
		if block.BlockType() == BlockTypeTable {
			n++
		}
	}
	return n
}

// envelope is the wire form of a content block: the variant fields plus the
// "type" discriminator.
type envelope struct {
	Type        BlockType  `json:"type"`
	Section     *string    `json:"section"`
	SubSection  *string    `json:"sub_section"`
	Text        string     `json:"text,omitempty"`
	Description string     `json:"description,omitempty"`
	Data        [][]string `json:"table_data,omitempty"`
	Image       *ImageInfo `json:"image_info,omitempty"`
}

// MarshalJSON writes the page with each content block tagged by its variant
// type.
func (p Page) MarshalJSON() ([]byte, error) {
	out := struct {
		PageNumber int        `json:"page_number"`
		Content    []envelope `json:"content"`
	}{
		PageNumber: p.PageNumber,
		Content:    make([]envelope, 0, len(p.Content)),
	}

	for _, block := range p.Content {
		switch b := block.(type) {
		case Paragraph:
			out.Content = append(out.Content, envelope{
				Type:       BlockTypeParagraph,
				Section:    b.Section,
				SubSection: b.SubSection,
				Text:       b.Text,
			})
		case Table:
			out.Content = append(out.Content, envelope{
				Type:        BlockTypeTable,
				Section:     b.Section,
				SubSection:  b.SubSection,
				Description: b.Description,
				Data:        b.Data,
			})
		case Chart:
			img := b.Image
			out.Content = append(out.Content, envelope{
				Type:        BlockTypeChart,
				Section:     b.Section,
				SubSection:  b.SubSection,
				Description: b.Description,
				Image:       &img,
			})
		default:
			return nil, fmt.Errorf("unknown content block type %q", block.BlockType())
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON restores the typed block variants from the persisted format.
// An unrecognized "type" value is a decode error rather than a silent skip.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		PageNumber int        `json:"page_number"`
		Content    []envelope `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.PageNumber = raw.PageNumber
	p.Content = make([]ContentBlock, 0, len(raw.Content))

	for _, env := range raw.Content {
		switch env.Type {
		case BlockTypeParagraph:
			p.Content = append(p.Content, Paragraph{
				Section:    env.Section,
				SubSection: env.SubSection,
				Text:       env.Text,
			})
		case BlockTypeTable:
			p.Content = append(p.Content, Table{
				Section:     env.Section,
				SubSection:  env.SubSection,
				Description: env.Description,
				Data:        env.Data,
			})
		case BlockTypeChart:
			var img ImageInfo
			if env.Image != nil {
				img = *env.Image
			}
			p.Content = append(p.Content, Chart{
				Section:     env.Section,
				SubSection:  env.SubSection,
				Description: env.Description,
				Image:       img,
			})
		default:
			return fmt.Errorf("unknown content block type %q on page %d", env.Type, raw.PageNumber)
		}
	}

	return nil
}
