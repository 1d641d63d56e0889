// Package opc implements the package/part resolution layer for OOXML
// documents (Open Packaging Conventions).
//
// An OOXML document is a zip archive whose internal XML parts reference one
// another through relationship (".rels") sidecar files. A [Package] owns the
// archive handle and enumerates one [Part] per relationship record found in
// any rels file. Each Part resolves its own storage path from the directory
// of the declaring rels file plus the relationship target, decodes its XML
// lazily, and classifies itself by the basename of its relationship type URI.
//
// Parts whose XML holds displayed text (main document, headers, footers,
// footnotes, endnotes) are "content parts". [Package.Save] rewrites the
// archive copying every other entry byte for byte and re-serializing only the
// content parts, so edits made through a part's XML tree survive a round trip
// without re-encoding anything the decoder does not understand.
//
// All lazily computed values are memoized for the lifetime of the owning
// instance; the archive is assumed immutable except through Save. A Package
// and its Parts are not safe for concurrent use.
package opc
