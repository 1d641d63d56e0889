package opc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/beevik/etree"

	"docpack/model"
)

// Options are the decode options shared by every part of a package.
type Options struct {
	// HTML renders some run formatting (bold, italic, ...) as HTML tags
	// inside the extracted runs.
	HTML bool
	// ParagraphStyles prepends each paragraph's style id as its first run.
	ParagraphStyles bool
}

// Collaborators are the decoding routines the core consumes. They are wired
// in by the caller (normally the docpack package) so the part layer stays
// independent of WordprocessingML specifics. Any of them may be nil, in
// which case the corresponding step is skipped.
type Collaborators struct {
	// MergeRuns normalizes a content part's tree in place. Best effort: a
	// returned error downgrades to a warning and the unmerged tree is used.
	MergeRuns func(p *Part, root *etree.Element) error
	// Extract turns a part's tree into nested positional content.
	Extract func(p *Part, root *etree.Element) []model.Table
	// NumFmts decodes word/numbering.xml into numId -> per-level formats.
	NumFmts func(root *etree.Element) map[string][]string
}

// Package is the document container: it owns the archive handle, enumerates
// one Part per relationship record found in any rels file, and caches the
// numbering-format table shared between parts.
type Package struct {
	archive string
	opts    Options
	collab  Collaborators

	zr       *zip.ReadCloser
	files    []*Part
	numFmts  map[string][]string
	warnings []Warning
}

// New creates a Package for the archive at the given path. The archive is
// opened on first access and closed by Close (or consumed by Save).
func New(archive string, opts Options, collab Collaborators) *Package {
	return &Package{archive: archive, opts: opts, collab: collab}
}

// Archive returns the archive location the package was created from.
func (pkg *Package) Archive() string { return pkg.archive }

// Options returns the package's decode options.
func (pkg *Package) Options() Options { return pkg.opts }

// Close releases the archive handle. Safe to call multiple times.
func (pkg *Package) Close() error {
	if pkg.zr != nil {
		err := pkg.zr.Close()
		pkg.zr = nil
		return err
	}
	return nil
}

// Warnings returns the non-fatal diagnostics recorded so far.
func (pkg *Package) Warnings() []Warning {
	return append([]Warning(nil), pkg.warnings...)
}

func (pkg *Package) warn(w Warning) {
	pkg.warnings = append(pkg.warnings, w)
}

// reader opens the archive on first use.
func (pkg *Package) reader() (*zip.ReadCloser, error) {
	if pkg.zr != nil {
		return pkg.zr, nil
	}
	zr, err := zip.OpenReader(pkg.archive)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", pkg.archive, err)
	}
	pkg.zr = zr
	return zr, nil
}

// read returns the raw bytes of one archive entry. A missing entry yields an
// error matching ErrNoEntry.
func (pkg *Package) read(name string) ([]byte, error) {
	zr, err := pkg.reader()
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", name, pkg.archive, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading %s in %s: %w", name, pkg.archive, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s in %s: %w", name, pkg.archive, ErrNoEntry)
}

// Files enumerates one Part per relationship record found in any rels file.
// This is a one-level flattening over every rels table, not a recursive
// graph walk; every part of interest in a well-formed package is reached by
// at least one rels file. The result is cached.
func (pkg *Package) Files() ([]*Part, error) {
	if pkg.files != nil {
		return pkg.files, nil
	}
	zr, err := pkg.reader()
	if err != nil {
		return nil, err
	}
	tables, err := collectRels(&zr.Reader)
	if err != nil {
		return nil, err
	}
	var files []*Part
	for _, table := range tables {
		dir := path.Dir(table.path)
		for _, rel := range table.rels {
			files = append(files, newPart(pkg, rel, dir))
		}
	}
	pkg.files = files
	return pkg.files, nil
}

// NumFmts returns the numbering table: numId mapped to the numbering format
// name per indentation level. A package without word/numbering.xml yields an
// empty table; lists then render with a fallback marker rather than failing.
func (pkg *Package) NumFmts() (map[string][]string, error) {
	if pkg.numFmts != nil {
		return pkg.numFmts, nil
	}
	data, err := pkg.read("word/numbering.xml")
	if errors.Is(err, ErrNoEntry) {
		pkg.numFmts = map[string][]string{}
		return pkg.numFmts, nil
	}
	if err != nil {
		return nil, err
	}
	doc, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("word/numbering.xml: %w", err)
	}
	if pkg.collab.NumFmts == nil {
		pkg.numFmts = map[string][]string{}
		return pkg.numFmts, nil
	}
	pkg.numFmts = pkg.collab.NumFmts(doc.Root())
	return pkg.numFmts, nil
}

// FilesOfType returns every part of the given kind, sorted ascending by
// storage path. Deterministic ordering matters: downstream document-order
// reconstruction depends on it.
func (pkg *Package) FilesOfType(kind Kind) ([]*Part, error) {
	files, err := pkg.Files()
	if err != nil {
		return nil, err
	}
	var matches []*Part
	for _, p := range files {
		if p.Kind == kind {
			matches = append(matches, p)
		}
	}
	sortByPath(matches)
	return matches, nil
}

// FilesOfTag returns every part whose raw type tag matches, sorted by path.
// It covers relationship types outside the known enumeration.
func (pkg *Package) FilesOfTag(tag string) ([]*Part, error) {
	files, err := pkg.Files()
	if err != nil {
		return nil, err
	}
	var matches []*Part
	for _, p := range files {
		if p.Type == tag {
			matches = append(matches, p)
		}
	}
	sortByPath(matches)
	return matches, nil
}

// FileOfType returns the single part of the given kind. When several match,
// a warning is recorded and the first by ascending path is returned; when
// none match, a NotFoundError is returned.
func (pkg *Package) FileOfType(kind Kind) (*Part, error) {
	matches, err := pkg.FilesOfType(kind)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Kind: kind, Archive: pkg.archive}
	}
	if len(matches) > 1 {
		pkg.warn(Warning{
			Op:     "file lookup",
			Detail: fmt.Sprintf("multiple parts of type %q in %s; returning %s", kind, pkg.archive, matches[0].Path()),
		})
	}
	return matches[0], nil
}

// ContentFiles returns every content part (main document, headers, footers,
// footnotes, endnotes), sorted ascending by storage path.
func (pkg *Package) ContentFiles() ([]*Part, error) {
	files, err := pkg.Files()
	if err != nil {
		return nil, err
	}
	var matches []*Part
	for _, p := range files {
		if p.Kind.IsContent() {
			matches = append(matches, p)
		}
	}
	sortByPath(matches)
	return matches, nil
}

func sortByPath(parts []*Part) {
	sort.Slice(parts, func(i, j int) bool { return parts[i].Path() < parts[j].Path() })
}

// Save writes a new archive at dest. Every entry outside the content-part
// set is copied raw (same compressed bytes, same metadata); content parts
// are written from their possibly mutated cached XML trees. All reads finish
// before the rewrite starts, and the source handle is closed by the time
// Save returns: the Package must not be used for further reads afterward.
func (pkg *Package) Save(dest string) error {
	content, err := pkg.ContentFiles()
	if err != nil {
		return err
	}
	serialized := make(map[string][]byte, len(content))
	order := make([]string, 0, len(content))
	for _, p := range content {
		if _, ok := serialized[p.Path()]; ok {
			continue
		}
		data, err := p.MarshalXML()
		if err != nil {
			return err
		}
		serialized[p.Path()] = data
		order = append(order, p.Path())
	}

	zr, err := pkg.reader()
	if err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	zw := zip.NewWriter(out)
	for _, f := range zr.File {
		if _, ok := serialized[f.Name]; ok {
			continue
		}
		if err := zw.Copy(f); err != nil {
			out.Close()
			return fmt.Errorf("copying %s: %w", f.Name, err)
		}
	}
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			out.Close()
			return fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := w.Write(serialized[name]); err != nil {
			out.Close()
			return fmt.Errorf("writing entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	return pkg.Close()
}

// PullImageFiles reads every image part's bytes, keyed by the basename of
// its declared target. An image declared in a rels file but absent from the
// archive is skipped silently. When dir is non-empty it is created along
// with missing parents and each image is written into it; the mapping is
// returned either way.
func (pkg *Package) PullImageFiles(dir string) (map[string][]byte, error) {
	parts, err := pkg.FilesOfType(KindImage)
	if err != nil {
		return nil, err
	}
	images := make(map[string][]byte)
	for _, p := range parts {
		data, err := pkg.read(p.Path())
		if errors.Is(err, ErrNoEntry) {
			continue
		}
		if err != nil {
			return nil, err
		}
		images[path.Base(p.Target)] = data
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
		for name, data := range images {
			if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
				return nil, fmt.Errorf("writing image %s: %w", name, err)
			}
		}
	}
	return images, nil
}
