package wml

import (
	"sort"
	"strings"

	"github.com/beevik/etree"

	"docpack/opc"
)

// MergeRuns normalizes a content part's tree in place. Word splits logically
// continuous text into separate runs on spell-check boundaries, revision
// saves, and other editing accidents; this pass merges consecutive sibling
// runs whose formatting properties are identical, then merges the adjacent
// text elements inside each run. The result extracts as one run per
// formatting change instead of one per editing accident, and round-trips
// through save as simpler XML.
func MergeRuns(p *opc.Part, root *etree.Element) error {
	mergeSiblingRuns(root)
	return nil
}

func mergeSiblingRuns(el *etree.Element) {
	var prev *etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == "r" {
			if prev != nil && runKey(prev) == runKey(child) && textOnly(prev) && textOnly(child) {
				for _, t := range childElements(child, "t") {
					prev.AddChild(t)
				}
				el.RemoveChild(child)
				continue
			}
			prev = child
			continue
		}
		prev = nil
		mergeSiblingRuns(child)
	}
	for _, r := range childElements(el, "r") {
		mergeTexts(r)
	}
}

// textOnly reports whether a run holds nothing but formatting properties and
// text. Runs carrying breaks, tabs, or drawings are never merged; moving
// their text would reorder content around the non-text children.
func textOnly(r *etree.Element) bool {
	for _, c := range r.ChildElements() {
		if c.Tag != "t" && c.Tag != "rPr" {
			return false
		}
	}
	return true
}

// mergeTexts concatenates consecutive text children of a run. Merged text
// that begins or ends with whitespace gets xml:space="preserve" so the
// whitespace survives re-serialization.
func mergeTexts(r *etree.Element) {
	var prev *etree.Element
	for _, c := range r.ChildElements() {
		if c.Tag != "t" {
			prev = nil
			continue
		}
		if prev == nil {
			prev = c
			continue
		}
		prev.SetText(prev.Text() + c.Text())
		r.RemoveChild(c)
	}
	for _, t := range childElements(r, "t") {
		if txt := t.Text(); txt != strings.TrimSpace(txt) {
			t.CreateAttr("xml:space", "preserve")
		}
	}
}

// runKey is a canonical signature of a run's formatting properties. Two runs
// with equal keys are interchangeable in everything but their text.
func runKey(r *etree.Element) string {
	rPr := r.SelectElement("rPr")
	if rPr == nil {
		return ""
	}
	var sb strings.Builder
	writeElemKey(&sb, rPr)
	return sb.String()
}

func writeElemKey(sb *strings.Builder, el *etree.Element) {
	sb.WriteString(el.Tag)
	attrs := append([]etree.Attr(nil), el.Attr...)
	sort.Slice(attrs, func(i, j int) bool {
		if attrs[i].Key != attrs[j].Key {
			return attrs[i].Key < attrs[j].Key
		}
		return attrs[i].Space < attrs[j].Space
	})
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value)
	}
	sb.WriteByte('{')
	for _, c := range el.ChildElements() {
		writeElemKey(sb, c)
	}
	sb.WriteByte('}')
}
