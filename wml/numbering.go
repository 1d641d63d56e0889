package wml

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// CollectNumFmts decodes a numbering part (word/numbering.xml) into a map
// from numId to the numbering format name per indentation level. Word
// indirects numbering through abstract definitions: num elements map a numId
// to an abstractNumId, and abstractNum elements define one numFmt per level.
func CollectNumFmts(root *etree.Element) map[string][]string {
	type levelFmt struct {
		ilvl int
		name string
	}

	abstract := make(map[string][]string)
	for _, an := range childElements(root, "abstractNum") {
		id := an.SelectAttrValue("abstractNumId", "")
		var levels []levelFmt
		for _, lvl := range childElements(an, "lvl") {
			ilvl, err := strconv.Atoi(lvl.SelectAttrValue("ilvl", ""))
			if err != nil {
				continue
			}
			name := ""
			if nf := lvl.SelectElement("numFmt"); nf != nil {
				name = nf.SelectAttrValue("val", "")
			}
			levels = append(levels, levelFmt{ilvl: ilvl, name: name})
		}
		sort.Slice(levels, func(i, j int) bool { return levels[i].ilvl < levels[j].ilvl })
		names := make([]string, len(levels))
		for i, l := range levels {
			names[i] = l.name
		}
		abstract[id] = names
	}

	out := make(map[string][]string)
	for _, num := range childElements(root, "num") {
		numID := num.SelectAttrValue("numId", "")
		if numID == "" {
			continue
		}
		aid := ""
		if a := num.SelectElement("abstractNumId"); a != nil {
			aid = a.SelectAttrValue("val", "")
		}
		if names, ok := abstract[aid]; ok {
			out[numID] = names
		}
	}
	return out
}

// formatMarker renders the nth item marker for a numbering format name.
// Unknown formats (and lists without a numbering definition) fall back to
// the "--" bullet marker.
func formatMarker(name string, n int) string {
	switch name {
	case "bullet":
		return "--"
	case "decimal":
		return strconv.Itoa(n) + ")"
	case "lowerLetter":
		return toLetter(n) + ")"
	case "upperLetter":
		return strings.ToUpper(toLetter(n)) + ")"
	case "lowerRoman":
		return strings.ToLower(toRoman(n)) + ")"
	case "upperRoman":
		return toRoman(n) + ")"
	case "none":
		return ""
	default:
		return "--"
	}
}

// toLetter converts 1-based n to spreadsheet-style letters: a..z, aa, ab...
func toLetter(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// toRoman converts 1-based n to upper-case roman numerals.
func toRoman(n int) string {
	var sb strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			sb.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return sb.String()
}

// childElements returns the direct children with the given local tag,
// ignoring namespace prefixes.
func childElements(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}
