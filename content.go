package docpack

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"docpack/model"
	"docpack/opc"
)

// Content is the extracted view of one open document. All accessors are
// lazily computed and cached by the underlying package; calling them in any
// order or repeatedly is cheap.
type Content struct {
	pkg      *opc.Package
	opts     Options
	warnings []Warning
}

// Package exposes the underlying part-level package for advanced use.
func (c *Content) Package() *opc.Package { return c.pkg }

// Close releases the archive handle. Safe to call multiple times.
func (c *Content) Close() error { return c.pkg.Close() }

// Save writes the document to dest: content parts are re-serialized from
// their (possibly edited) XML trees, every other archive entry is copied
// byte for byte. Save consumes the Content; it must not be read afterward.
func (c *Content) Save(dest string) error { return c.pkg.Save(dest) }

// Warnings returns the non-fatal diagnostics recorded so far.
func (c *Content) Warnings() []Warning {
	return append(c.pkg.Warnings(), c.warnings...)
}

func (c *Content) warn(w Warning) {
	c.warnings = append(c.warnings, w)
}

// runsOf extracts every part of one kind, in ascending path order.
func (c *Content) runsOf(kind opc.Kind) ([]model.Table, error) {
	parts, err := c.pkg.FilesOfType(kind)
	if err != nil {
		return nil, err
	}
	var out []model.Table
	for _, p := range parts {
		tables, err := p.Content()
		if err != nil {
			return nil, err
		}
		out = append(out, tables...)
	}
	return out, nil
}

// BodyRuns returns the main document body as tables of rows of cells of
// paragraphs of runs.
func (c *Content) BodyRuns() ([]model.Table, error) {
	return c.runsOf(opc.KindOfficeDocument)
}

// HeaderRuns returns all header content, parts ordered by storage path.
func (c *Content) HeaderRuns() ([]model.Table, error) {
	return c.runsOf(opc.KindHeader)
}

// FooterRuns returns all footer content, parts ordered by storage path.
func (c *Content) FooterRuns() ([]model.Table, error) {
	return c.runsOf(opc.KindFooter)
}

// FootnotesRuns returns footnote content with per-note markers.
func (c *Content) FootnotesRuns() ([]model.Table, error) {
	return c.runsOf(opc.KindFootnotes)
}

// EndnotesRuns returns endnote content with per-note markers.
func (c *Content) EndnotesRuns() ([]model.Table, error) {
	return c.runsOf(opc.KindEndnotes)
}

// DocumentRuns returns the whole document: headers, body, footers,
// footnotes, endnotes, concatenated in that order.
func (c *Content) DocumentRuns() ([]model.Table, error) {
	var out []model.Table
	for _, runs := range []func() ([]model.Table, error){
		c.HeaderRuns, c.BodyRuns, c.FooterRuns, c.FootnotesRuns, c.EndnotesRuns,
	} {
		tables, err := runs()
		if err != nil {
			return nil, err
		}
		out = append(out, tables...)
	}
	return out, nil
}

// Text flattens the whole document to plain text: runs joined, paragraphs
// separated by blank lines. Paragraph-style descriptors inserted by the
// ParagraphStyles option are stripped here.
func (c *Content) Text() (string, error) {
	tables, err := c.DocumentRuns()
	if err != nil {
		return "", err
	}
	return model.Text(tables, c.opts.ParagraphStyles), nil
}

// CoreProperties returns the document's core properties (title, creator,
// modified, ...) keyed by local tag name. Documents without a
// core-properties part (Google Docs exports, for instance) record a warning
// and yield an empty map.
func (c *Content) CoreProperties() (map[string]string, error) {
	part, err := c.pkg.FileOfType(opc.KindCoreProperties)
	var notFound *opc.NotFoundError
	if errors.As(err, &notFound) {
		c.warn(Warning{
			Op:     "core properties",
			Detail: fmt.Sprintf("%s has no core-properties part; returning empty properties", c.pkg.Archive()),
		})
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	root, err := part.Root()
	if err != nil {
		return nil, err
	}
	props := make(map[string]string)
	for _, child := range root.ChildElements() {
		props[child.Tag] = child.Text()
	}
	return props, nil
}

// HTMLMap renders the document as an HTML page of nested tables, one cell
// per extracted cell, each labeled with its positional index. It is a
// debugging view for locating content within the nested structure.
func (c *Content) HTMLMap() (string, error) {
	tables, err := c.DocumentRuns()
	if err != nil {
		return "", err
	}
	joined := model.JoinRuns(tables)

	body := elem("body", atom.Body)
	for i, table := range joined {
		tbl := elem("table", atom.Table)
		tbl.Attr = []html.Attribute{{Key: "border", Val: "1"}}
		for j, row := range table {
			tr := elem("tr", atom.Tr)
			for k, cell := range row {
				td := elem("td", atom.Td)
				for l, par := range cell {
					pre := elem("pre", atom.Pre)
					label := fmt.Sprintf("[%d][%d][%d][%d] ", i, j, k, l)
					pre.AppendChild(textNode(label + strings.Join(par, "")))
					td.AppendChild(pre)
				}
				tr.AppendChild(td)
			}
			tbl.AppendChild(tr)
		}
		body.AppendChild(tbl)
	}

	var sb strings.Builder
	if err := html.Render(&sb, body); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func elem(tag string, a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: a}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ImageNames returns the filenames of the document's embedded images,
// sorted.
func (c *Content) ImageNames() ([]string, error) {
	images, err := c.Images()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Images returns the document's embedded images as filename -> bytes.
func (c *Content) Images() (map[string][]byte, error) {
	return c.pkg.PullImageFiles("")
}

// WriteImages writes every embedded image into dir, creating it if missing,
// and returns the filename -> bytes mapping.
func (c *Content) WriteImages(dir string) (map[string][]byte, error) {
	return c.pkg.PullImageFiles(dir)
}
