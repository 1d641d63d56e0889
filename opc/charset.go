package opc

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/htmlindex"
)

// charsetReader decodes XML declared in a non-UTF-8 charset. Word itself
// always writes UTF-8, but other producers occasionally declare single-byte
// encodings in the XML prolog.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// parseXML parses one archive entry into an element tree.
func parseXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing XML: no root element")
	}
	return doc, nil
}
