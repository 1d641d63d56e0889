package opc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Relationship is one record from a rels file: an id unique within that file,
// a type URI, and a target path (relative to the directory holding the rels
// file's parent, or an absolute external URI).
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// relationshipsXML is the document element of a rels file.
type relationshipsXML struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

// relsTable is the parsed contents of one rels file.
type relsTable struct {
	path string // archive path of the rels file itself
	rels []Relationship
}

// collectRels locates every *.rels entry in the archive and parses each into
// its relationship records. Tables are returned in archive order so part
// enumeration is reproducible.
func collectRels(zr *zip.Reader) ([]relsTable, error) {
	var tables []relsTable
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".rels") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		rels, err := parseRels(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Name, err)
		}
		tables = append(tables, relsTable{path: f.Name, rels: rels})
	}
	return tables, nil
}

// parseRels decodes the records of one rels file.
func parseRels(data []byte) ([]Relationship, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	dec.CharsetReader = charsetReader
	var doc relationshipsXML
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Relationships, nil
}
