package opc

import "path"

// Kind classifies a part by the basename of its relationship type URI.
// Unrecognized URIs map to KindOther; the raw tag is preserved on the Part so
// exotic relationship types pass through untouched.
type Kind int

const (
	KindOther Kind = iota
	KindOfficeDocument
	KindHeader
	KindFooter
	KindFootnotes
	KindEndnotes
	KindStyles
	KindNumbering
	KindFontTable
	KindTheme
	KindSettings
	KindWebSettings
	KindImage
	KindHyperlink
	KindCoreProperties
	KindExtendedProperties
	KindCustomXML
)

var kindTags = map[string]Kind{
	"officeDocument":      KindOfficeDocument,
	"header":              KindHeader,
	"footer":              KindFooter,
	"footnotes":           KindFootnotes,
	"endnotes":            KindEndnotes,
	"styles":              KindStyles,
	"numbering":           KindNumbering,
	"fontTable":           KindFontTable,
	"theme":               KindTheme,
	"settings":            KindSettings,
	"webSettings":         KindWebSettings,
	"image":               KindImage,
	"hyperlink":           KindHyperlink,
	"core-properties":     KindCoreProperties,
	"extended-properties": KindExtendedProperties,
	"customXml":           KindCustomXML,
}

var kindNames = map[Kind]string{
	KindOther:              "other",
	KindOfficeDocument:     "officeDocument",
	KindHeader:             "header",
	KindFooter:             "footer",
	KindFootnotes:          "footnotes",
	KindEndnotes:           "endnotes",
	KindStyles:             "styles",
	KindNumbering:          "numbering",
	KindFontTable:          "fontTable",
	KindTheme:              "theme",
	KindSettings:           "settings",
	KindWebSettings:        "webSettings",
	KindImage:              "image",
	KindHyperlink:          "hyperlink",
	KindCoreProperties:     "core-properties",
	KindExtendedProperties: "extended-properties",
	KindCustomXML:          "customXml",
}

// contentKinds are the part kinds whose XML holds displayed document text.
var contentKinds = []Kind{
	KindOfficeDocument,
	KindHeader,
	KindFooter,
	KindFootnotes,
	KindEndnotes,
}

// KindFromType classifies a relationship type URI. The short tag is the URI
// basename, e.g. "http://schemas.../relationships/header" -> KindHeader.
func KindFromType(typeURI string) Kind {
	return kindTags[path.Base(typeURI)]
}

// String returns the short type tag for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// IsContent reports whether parts of this kind hold displayed document text.
func (k Kind) IsContent() bool {
	for _, ck := range contentKinds {
		if k == ck {
			return true
		}
	}
	return false
}
