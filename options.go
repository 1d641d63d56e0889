package docpack

// Options holds configuration for content extraction.
type Options struct {
	// HTML renders run formatting (bold, italic, underline, strike,
	// subscript, superscript) as HTML tags inside extracted runs, and
	// hyperlinks as anchors.
	HTML bool

	// ParagraphStyles inserts each paragraph's style id as the paragraph's
	// first run. Text strips these descriptors again; run-level accessors
	// expose them.
	ParagraphStyles bool

	// ImageDir, when non-empty, receives a copy of every embedded image at
	// open time. The directory is created if missing.
	ImageDir string
}
