package wml

import (
	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// htmlTags maps run-property local tags to the HTML tags they render as.
// Order matters for stable nesting of the generated markup.
var htmlTags = []struct {
	prop string
	tag  string
}{
	{"b", "b"},
	{"i", "i"},
	{"u", "u"},
	{"strike", "s"},
}

// formatHTML wraps already-escaped run text with tags for the run's
// formatting properties. Toggle properties count as on unless their val
// attribute turns them off; underline additionally honors val="none".
func formatHTML(rPr *etree.Element, text string) string {
	if rPr == nil {
		return text
	}
	for i := len(htmlTags) - 1; i >= 0; i-- {
		ht := htmlTags[i]
		el := rPr.SelectElement(ht.prop)
		if el == nil || !toggleOn(el) {
			continue
		}
		if ht.prop == "u" && el.SelectAttrValue("val", "") == "none" {
			continue
		}
		text = "<" + ht.tag + ">" + text + "</" + ht.tag + ">"
	}
	if va := rPr.SelectElement("vertAlign"); va != nil {
		switch va.SelectAttrValue("val", "") {
		case "subscript":
			text = "<sub>" + text + "</sub>"
		case "superscript":
			text = "<sup>" + text + "</sup>"
		}
	}
	return text
}

func toggleOn(el *etree.Element) bool {
	switch el.SelectAttrValue("val", "") {
	case "false", "0", "none":
		return false
	}
	return true
}

// escapeText escapes run text for HTML output.
func escapeText(s string) string { return html.EscapeString(s) }
