// Package extract defines the boundary to the external PDF-decoding
// collaborators and provides the bundled backend implementations: a fast
// per-page primary source and a slower whole-document fallback table backend.
// The structuring pipeline consumes only the types declared here; the
// backends' layout analysis is opaque to it.
package extract

// RawTable is a table matrix as reported by the primary backend: ordered
// rows of nullable cell strings. Nil cells are treated as empty by the
// normalization step downstream.
type RawTable [][]*string

// ImageDescriptor carries the geometry the backend reports for one image on
// a page. Fields the backend cannot determine are zero.
type ImageDescriptor struct {
	Width  float64
	Height float64
	X0     float64
	Y0     float64
}

// PageExtract is the opaque per-page extraction result the pipeline consumes:
// raw text (may be empty), detected tables, and detected images.
type PageExtract struct {
	PageNumber int
	Text       string
	Tables     []RawTable
	Images     []ImageDescriptor
}

// PageSource is the primary extraction backend, invoked page by page.
type PageSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Page extracts the content of a single page. Page numbers are 1-based.
	Page(pageNum int) (PageExtract, error)

	// Close releases the underlying document.
	Close() error
}

// FallbackTable is one table reported by the fallback backend: the page it
// was found on (1-based), a header row, and the data rows beneath it.
type FallbackTable struct {
	Page   int
	Header []string
	Rows   [][]string
}

// TableBackend is the fallback table extractor, invoked once over the whole
// document after primary processing. Tables are returned in extraction order.
type TableBackend interface {
	ExtractTables() ([]FallbackTable, error)
}
