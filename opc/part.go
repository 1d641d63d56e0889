package opc

import (
	"errors"
	"fmt"
	"path"

	"github.com/beevik/etree"

	"docpack/model"
)

// Part is one addressable file inside the package. The docx lists internal
// files in its rels files; each record supplies Id, Type, and Target, and the
// directory the declaring rels file was found in is injected as Dir. Storage
// path, sibling rels path, outbound relationships, and the parsed XML tree
// are all inferred lazily from those four attributes and memoized.
//
// A Part holds a non-owning reference to its Package, used only to read
// archive bytes and consult shared tables. Parts never outlive their Package.
type Part struct {
	pkg *Package

	// Relationship attributes.
	ID     string
	Type   string // short type tag, the basename of the relationship type URI
	Kind   Kind
	Target string
	Dir    string // directory that held the declaring rels file

	path     string
	relsPath string
	rels     map[string]string
	doc      *etree.Document
}

func newPart(pkg *Package, rel Relationship, dir string) *Part {
	return &Part{
		pkg:    pkg,
		ID:     rel.ID,
		Type:   path.Base(rel.Type),
		Kind:   KindFromType(rel.Type),
		Target: rel.Target,
		Dir:    dir,
	}
}

// Package returns the package that owns this part.
func (p *Part) Package() *Package { return p.pkg }

func (p *Part) String() string { return "Part(" + p.Path() + ")" }

// PartPath infers the storage path of a part from the directory that held the
// declaring rels file and the relationship target. The directory portions of
// both are joined, then the target's basename appended:
//
//	dir "_rels", target "word/document.xml" -> "word/document.xml"
//	dir "word/_rels", target "header1.xml"  -> "word/header1.xml"
//
// Pure string manipulation; never touches the archive.
func PartPath(dir, target string) string {
	var dirs []string
	for _, d := range []string{path.Dir(dir), path.Dir(target)} {
		if d != "" && d != "." {
			dirs = append(dirs, d)
		}
	}
	filename := path.Base(target)
	if len(dirs) == 0 {
		return filename
	}
	return joinPath(dirs...) + "/" + filename
}

func joinPath(elems ...string) string {
	out := elems[0]
	for _, e := range elems[1:] {
		out += "/" + e
	}
	return out
}

// Path returns the part's storage path within the archive, computed once.
func (p *Part) Path() string {
	if p.path == "" {
		p.path = PartPath(p.Dir, p.Target)
	}
	return p.path
}

// RelsPath returns the path of the part's own rels sidecar:
// {dir}/_rels/{filename}.rels. The entry is not guaranteed to exist.
func (p *Part) RelsPath() string {
	if p.relsPath == "" {
		dir, file := path.Split(p.Path())
		p.relsPath = dir + "_rels/" + file + ".rels"
	}
	return p.relsPath
}

// Rels returns the part's outbound relationships as id -> target. Most parts
// define none; a missing rels entry yields an empty map, not an error.
func (p *Part) Rels() (map[string]string, error) {
	if p.rels != nil {
		return p.rels, nil
	}
	data, err := p.pkg.read(p.RelsPath())
	if errors.Is(err, ErrNoEntry) {
		p.rels = map[string]string{}
		return p.rels, nil
	}
	if err != nil {
		return nil, err
	}
	recs, err := parseRels(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p.RelsPath(), err)
	}
	rels := make(map[string]string, len(recs))
	for _, r := range recs {
		rels[r.ID] = r.Target
	}
	p.rels = rels
	return p.rels, nil
}

// Root returns the part's parsed XML root. Content parts get a best-effort
// run-merge normalization before caching; if the transform fails, a warning
// is recorded and the tree is re-parsed from the original bytes so the cached
// tree carries no partial mutation.
func (p *Part) Root() (*etree.Element, error) {
	if p.doc != nil {
		return p.doc.Root(), nil
	}
	data, err := p.pkg.read(p.Path())
	if err != nil {
		return nil, err
	}
	doc, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path(), err)
	}
	if p.Kind.IsContent() && p.pkg.collab.MergeRuns != nil {
		if mergeErr := p.pkg.collab.MergeRuns(p, doc.Root()); mergeErr != nil {
			p.pkg.warn(Warning{
				Op: "merge runs",
				Detail: fmt.Sprintf("merging consecutive elements in %s %s failed: %v; keeping unmerged tree",
					p.pkg.archive, p.Path(), mergeErr),
			})
			doc, err = parseXML(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Path(), err)
			}
		}
	}
	p.doc = doc
	return p.doc.Root(), nil
}

// MarshalXML serializes the part's (possibly mutated) cached XML tree.
func (p *Part) MarshalXML() ([]byte, error) {
	if _, err := p.Root(); err != nil {
		return nil, err
	}
	return p.doc.WriteToBytes()
}

// Content extracts the part's text into the nested positional structure.
func (p *Part) Content() ([]model.Table, error) {
	root, err := p.Root()
	if err != nil {
		return nil, err
	}
	return p.ContentOf(root), nil
}

// ContentOf extracts content from the given root down, enabling extraction
// scoped to a subtree such as a single table cell.
func (p *Part) ContentOf(root *etree.Element) []model.Table {
	if p.pkg.collab.Extract == nil {
		return nil
	}
	return p.pkg.collab.Extract(p, root)
}
