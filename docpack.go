// Package docpack extracts the content of docx documents: body, header,
// footer, footnote, and endnote text in document order, each as nested
// tables of rows of cells of paragraphs of runs, plus embedded images, core
// properties, and a selective save that leaves untouched parts byte
// identical.
//
// Basic usage:
//
//	doc, err := docpack.Open("report.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	text, err := doc.Text()
//
// With options:
//
//	doc, err := docpack.OpenWithOptions("report.docx", docpack.Options{
//	    HTML:     true,
//	    ImageDir: "media",
//	})
//
// For advanced use cases, the lower-level opc package is also available
// through Package.
package docpack

import (
	"docpack/opc"
	"docpack/wml"
)

// Open opens a docx archive and returns its Content. The returned Content
// must be closed when done, either explicitly via Close or implicitly by a
// terminal Save.
func Open(filename string) (*Content, error) {
	return OpenWithOptions(filename, Options{})
}

// OpenWithOptions opens a docx archive with the given extraction options.
// The archive is validated up front: an unreadable archive or malformed
// relationship file fails here rather than on first access.
func OpenWithOptions(filename string, opts Options) (*Content, error) {
	pkg := opc.New(filename, opc.Options{
		HTML:            opts.HTML,
		ParagraphStyles: opts.ParagraphStyles,
	}, opc.Collaborators{
		MergeRuns: wml.MergeRuns,
		Extract:   wml.Extract,
		NumFmts:   wml.CollectNumFmts,
	})
	if _, err := pkg.Files(); err != nil {
		pkg.Close()
		return nil, err
	}
	c := &Content{pkg: pkg, opts: opts}
	if opts.ImageDir != "" {
		if _, err := pkg.PullImageFiles(opts.ImageDir); err != nil {
			pkg.Close()
			return nil, err
		}
	}
	return c, nil
}

// Must panics on error; it trims error handling in examples and tooling.
//
//	doc := docpack.Must(docpack.Open("report.docx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
