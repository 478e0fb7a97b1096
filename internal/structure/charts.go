package structure

import (
	"fmt"

	"github.com/docstruct/pdfstruct/internal/document"
	"github.com/docstruct/pdfstruct/internal/extract"
)

// chartMinDimension is the strict lower bound (in backend units, typically
// PDF points) an image's width and height must both exceed to count as a
// chart. Smaller images are decorations, icons, or logos.
const chartMinDimension = 100

// DetectCharts filters a page's image descriptors into chart blocks.
//
// The ordinal in the description is assigned over all enumerated images, not
// over survivors, so a chart keeps its original enumeration index even when
// earlier images were filtered out. An empty descriptor list yields an empty
// result.
func DetectCharts(images []extract.ImageDescriptor, cursor *SectionCursor, pageNum int) []document.Chart {
	var charts []document.Chart
	section, subSection := cursor.Current()

	for i, img := range images {
		if img.Width <= chartMinDimension || img.Height <= chartMinDimension {
			continue
		}
		charts = append(charts, document.Chart{
			Section:     section,
			SubSection:  subSection,
			Description: fmt.Sprintf("Chart/Image %d detected on page %d", i+1, pageNum),
			Image: document.ImageInfo{
				Width:  img.Width,
				Height: img.Height,
				X0:     img.X0,
				Y0:     img.Y0,
			},
		})
	}

	return charts
}
