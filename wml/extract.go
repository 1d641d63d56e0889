package wml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"docpack/model"
	"docpack/opc"
)

// Extract walks a content part's XML tree into nested positional content:
// tables of rows of cells of paragraphs of runs. Paragraphs outside any
// table are wrapped in an implicit 1x1 table so depth is uniform; a table
// element flushes the pending implicit table first, preserving document
// order. Footnote and endnote bodies get an identifying marker prepended to
// their first paragraph.
func Extract(p *opc.Part, root *etree.Element) []model.Table {
	numFmts, err := p.Package().NumFmts()
	if err != nil {
		// A corrupt numbering part should not take text extraction down
		// with it; lists render with the fallback marker instead.
		numFmts = map[string][]string{}
	}
	e := &extractor{
		part:     p,
		opts:     p.Package().Options(),
		numFmts:  numFmts,
		counters: make(map[string][]int),
	}
	e.walk(root)
	e.flush()
	return e.tables
}

type extractor struct {
	part     *opc.Part
	opts     opc.Options
	numFmts  map[string][]string
	counters map[string][]int // per-numId item counters, one slot per level

	tables  []model.Table
	pending model.Cell // loose paragraphs awaiting the implicit 1x1 table
}

func (e *extractor) flush() {
	if len(e.pending) == 0 {
		return
	}
	e.tables = append(e.tables, model.Table{model.Row{e.pending}})
	e.pending = nil
}

func (e *extractor) walk(el *etree.Element) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "p":
			e.pending = append(e.pending, e.paragraph(child))
		case "tbl":
			e.flush()
			e.tables = append(e.tables, e.table(child))
		case "footnote", "endnote":
			e.note(child)
		case "sectPr":
			// section properties carry no text
		default:
			e.walk(child)
		}
	}
}

// note extracts a footnote or endnote body and prepends a "footnote2)"
// style marker. Word's separator and continuation pseudo-notes carry
// non-positive ids and are skipped.
func (e *extractor) note(el *etree.Element) {
	id := el.SelectAttrValue("id", "")
	if n, err := strconv.Atoi(id); err != nil || n <= 0 {
		return
	}
	marker := fmt.Sprintf("%s%s)", el.Tag, id)
	before := len(e.pending)
	e.walk(el)
	if len(e.pending) > before {
		first := e.pending[before]
		// The marker goes after the style descriptor when one was inserted.
		at := 0
		if e.opts.ParagraphStyles && len(first) > 0 {
			at = 1
		}
		par := make(model.Paragraph, 0, len(first)+1)
		par = append(par, first[:at]...)
		par = append(par, marker+" ")
		par = append(par, first[at:]...)
		e.pending[before] = par
	} else {
		e.pending = append(e.pending, model.Paragraph{marker})
	}
}

func (e *extractor) table(tbl *etree.Element) model.Table {
	var table model.Table
	for _, tr := range childElements(tbl, "tr") {
		var row model.Row
		for _, tc := range childElements(tr, "tc") {
			row = append(row, e.cell(tc))
		}
		table = append(table, row)
	}
	return table
}

// cell collects a table cell's paragraphs. A table nested inside the cell is
// flattened into the cell's paragraph list; positional depth stays fixed at
// four regardless of nesting.
func (e *extractor) cell(tc *etree.Element) model.Cell {
	cell := model.Cell{}
	for _, child := range tc.ChildElements() {
		switch child.Tag {
		case "p":
			cell = append(cell, e.paragraph(child))
		case "tbl":
			for _, row := range e.table(child) {
				for _, c := range row {
					cell = append(cell, c...)
				}
			}
		}
	}
	return cell
}

func (e *extractor) paragraph(par *etree.Element) model.Paragraph {
	runs := model.Paragraph{}
	pPr := par.SelectElement("pPr")
	if e.opts.ParagraphStyles {
		runs = append(runs, paragraphStyle(pPr))
	}
	if marker, ok := e.listMarker(pPr); ok {
		runs = append(runs, marker)
	}
	for _, child := range par.ChildElements() {
		switch child.Tag {
		case "pPr":
			// handled above
		case "r":
			if text := e.run(child); text != "" {
				runs = append(runs, text)
			}
		case "hyperlink":
			if text := e.hyperlink(child); text != "" {
				runs = append(runs, text)
			}
		default:
			// field containers and smart tags wrap ordinary runs
			for _, r := range childElements(child, "r") {
				if text := e.run(r); text != "" {
					runs = append(runs, text)
				}
			}
		}
	}
	return runs
}

// paragraphStyle returns the paragraph's style id, or "" when unstyled.
func paragraphStyle(pPr *etree.Element) string {
	if pPr == nil {
		return ""
	}
	if ps := pPr.SelectElement("pStyle"); ps != nil {
		return ps.SelectAttrValue("val", "")
	}
	return ""
}

// listMarker renders the item marker for a numbered paragraph: tabs for the
// indentation level, then the level's format applied to the next counter
// value. Advancing a counter resets every deeper level of the same list.
func (e *extractor) listMarker(pPr *etree.Element) (string, bool) {
	if pPr == nil {
		return "", false
	}
	numPr := pPr.SelectElement("numPr")
	if numPr == nil {
		return "", false
	}
	numID := childVal(numPr, "numId")
	if numID == "" || numID == "0" {
		return "", false
	}
	ilvl := 0
	if v := childVal(numPr, "ilvl"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			ilvl = n
		}
	}
	name := ""
	if fmts := e.numFmts[numID]; ilvl < len(fmts) {
		name = fmts[ilvl]
	}
	marker := formatMarker(name, e.advance(numID, ilvl))
	if marker == "" {
		return "", false
	}
	return strings.Repeat("\t", ilvl) + marker, true
}

func (e *extractor) advance(numID string, ilvl int) int {
	c := e.counters[numID]
	for len(c) <= ilvl {
		c = append(c, 0)
	}
	c[ilvl]++
	for i := ilvl + 1; i < len(c); i++ {
		c[i] = 0
	}
	e.counters[numID] = c
	return c[ilvl]
}

func childVal(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return c.SelectAttrValue("val", "")
	}
	return ""
}

// run flattens one run's content to a string: text, tabs, explicit breaks,
// and form-element stand-ins. In HTML mode text is escaped and the result
// wrapped with tags for the run's formatting.
func (e *extractor) run(r *etree.Element) string {
	var sb strings.Builder
	for _, child := range r.ChildElements() {
		switch child.Tag {
		case "t":
			if e.opts.HTML {
				sb.WriteString(escapeText(child.Text()))
			} else {
				sb.WriteString(child.Text())
			}
		case "tab":
			sb.WriteString("\t")
		case "br", "cr":
			sb.WriteString("\n")
		case "noBreakHyphen":
			sb.WriteString("-")
		case "fldChar":
			if ffData := child.SelectElement("ffData"); ffData != nil {
				if cb := ffData.SelectElement("checkBox"); cb != nil {
					sb.WriteString(CheckBoxText(cb))
				}
				if dd := ffData.SelectElement("ddList"); dd != nil {
					sb.WriteString(DropDownText(dd))
				}
			}
		}
	}
	text := sb.String()
	if text == "" {
		return ""
	}
	if e.opts.HTML {
		text = formatHTML(r.SelectElement("rPr"), text)
	}
	return text
}

// hyperlink flattens a hyperlink's runs into one run. In HTML mode the
// target is resolved through the part's relationships and the text wrapped
// in an anchor; an unresolvable id leaves the bare text.
func (e *extractor) hyperlink(h *etree.Element) string {
	var sb strings.Builder
	for _, r := range childElements(h, "r") {
		sb.WriteString(e.run(r))
	}
	text := sb.String()
	if text == "" {
		return ""
	}
	if !e.opts.HTML {
		return text
	}
	id := h.SelectAttrValue("id", "")
	if id == "" {
		return text
	}
	rels, err := e.part.Rels()
	if err != nil {
		return text
	}
	target, ok := rels[id]
	if !ok {
		return text
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, escapeText(target), text)
}
