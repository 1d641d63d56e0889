package wml

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"docpack/model"
	"docpack/opc"
)

type entry struct {
	name string
	data string
}

func createTestArchive(t *testing.T, entries []entry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("failed to create entry %s: %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.data)); err != nil {
			t.Fatalf("failed to write entry %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}

const wNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
const rNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
const relType = rNS + "/"

func docEntries(body string, extra ...entry) []entry {
	entries := []entry{
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="` + relType + `officeDocument" Target="word/document.xml"/>
</Relationships>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="` + wNS + `" xmlns:r="` + rNS + `">
  <w:body>` + body + `</w:body>
</w:document>`},
	}
	return append(entries, extra...)
}

// openDoc builds an archive and opens it with the WordprocessingML
// collaborators wired in, the way the front-door package does.
func openDoc(t *testing.T, opts opc.Options, entries []entry) *opc.Package {
	t.Helper()
	path := createTestArchive(t, entries)
	pkg := opc.New(path, opts, opc.Collaborators{
		MergeRuns: MergeRuns,
		Extract:   Extract,
		NumFmts:   CollectNumFmts,
	})
	t.Cleanup(func() { pkg.Close() })
	return pkg
}

func contentOf(t *testing.T, pkg *opc.Package, kind opc.Kind) []model.Table {
	t.Helper()
	part, err := pkg.FileOfType(kind)
	if err != nil {
		t.Fatalf("FileOfType: %v", err)
	}
	tables, err := part.Content()
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	return tables
}

func bodyContent(t *testing.T, opts opc.Options, body string, extra ...entry) []model.Table {
	t.Helper()
	pkg := openDoc(t, opts, docEntries(body, extra...))
	return contentOf(t, pkg, opc.KindOfficeDocument)
}

func par(runs ...string) model.Paragraph { return model.Paragraph(runs) }

func TestExtractLooseParagraphs(t *testing.T) {
	tables := bodyContent(t, opc.Options{},
		`<w:p><w:r><w:t>first</w:t></w:r></w:p>
		 <w:p><w:r><w:t>second</w:t></w:r></w:p>`)

	want := []model.Table{
		{model.Row{model.Cell{par("first"), par("second")}}},
	}
	if !reflect.DeepEqual(tables, want) {
		t.Errorf("got %v, want %v", tables, want)
	}
}

func TestExtractTableSplitsLooseParagraphs(t *testing.T) {
	tables := bodyContent(t, opc.Options{},
		`<w:p><w:r><w:t>before</w:t></w:r></w:p>
		 <w:tbl>
		   <w:tr>
		     <w:tc><w:p><w:r><w:t>a1</w:t></w:r></w:p></w:tc>
		     <w:tc><w:p><w:r><w:t>a2</w:t></w:r></w:p></w:tc>
		   </w:tr>
		   <w:tr>
		     <w:tc><w:p><w:r><w:t>b1</w:t></w:r></w:p></w:tc>
		     <w:tc><w:p><w:r><w:t>b2</w:t></w:r></w:p></w:tc>
		   </w:tr>
		 </w:tbl>
		 <w:p><w:r><w:t>after</w:t></w:r></w:p>`)

	want := []model.Table{
		{model.Row{model.Cell{par("before")}}},
		{
			model.Row{model.Cell{par("a1")}, model.Cell{par("a2")}},
			model.Row{model.Cell{par("b1")}, model.Cell{par("b2")}},
		},
		{model.Row{model.Cell{par("after")}}},
	}
	if !reflect.DeepEqual(tables, want) {
		t.Errorf("got %v, want %v", tables, want)
	}
}

func TestExtractNestedTableFlattens(t *testing.T) {
	tables := bodyContent(t, opc.Options{},
		`<w:tbl><w:tr><w:tc>
		   <w:p><w:r><w:t>outer</w:t></w:r></w:p>
		   <w:tbl><w:tr><w:tc><w:p><w:r><w:t>inner</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
		 </w:tc></w:tr></w:tbl>`)

	want := []model.Table{
		{model.Row{model.Cell{par("outer"), par("inner")}}},
	}
	if !reflect.DeepEqual(tables, want) {
		t.Errorf("got %v, want %v", tables, want)
	}
}

func TestExtractRunContent(t *testing.T) {
	tables := bodyContent(t, opc.Options{},
		`<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t><w:noBreakHyphen/><w:t>d</w:t></w:r></w:p>`)

	pars := model.Paragraphs(tables)
	if len(pars) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(pars))
	}
	if got := pars[0][0]; got != "a\tb\nc-d" {
		t.Errorf("run text = %q, want %q", got, "a\tb\nc-d")
	}
}

func TestExtractEmptyRunsDropped(t *testing.T) {
	tables := bodyContent(t, opc.Options{},
		`<w:p><w:r><w:t></w:t></w:r><w:r><w:t>kept</w:t></w:r></w:p>`)

	pars := model.Paragraphs(tables)
	if len(pars) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(pars))
	}
	if !reflect.DeepEqual(pars[0], par("kept")) {
		t.Errorf("paragraph = %v, want [kept]", pars[0])
	}
}

func numberingEntry() entry {
	return entry{"word/numbering.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="` + wNS + `">
  <w:abstractNum w:abstractNumId="0">
    <w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl>
    <w:lvl w:ilvl="1"><w:numFmt w:val="lowerLetter"/></w:lvl>
    <w:lvl w:ilvl="2"><w:numFmt w:val="bullet"/></w:lvl>
  </w:abstractNum>
  <w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`}
}

func numberedPar(numID string, ilvl int, text string) string {
	return `<w:p><w:pPr><w:numPr><w:ilvl w:val="` + string(rune('0'+ilvl)) + `"/><w:numId w:val="` + numID + `"/></w:numPr></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func TestExtractNumberingCountersAndReset(t *testing.T) {
	body := numberedPar("1", 0, "one") +
		numberedPar("1", 1, "one-a") +
		numberedPar("1", 1, "one-b") +
		numberedPar("1", 0, "two") +
		numberedPar("1", 1, "two-a")
	tables := bodyContent(t, opc.Options{}, body, numberingEntry())

	pars := model.Paragraphs(tables)
	wantMarkers := []string{"1)", "\ta)", "\tb)", "2)", "\ta)"}
	if len(pars) != len(wantMarkers) {
		t.Fatalf("expected %d paragraphs, got %d", len(wantMarkers), len(pars))
	}
	for i, want := range wantMarkers {
		if pars[i][0] != want {
			t.Errorf("paragraph %d marker = %q, want %q", i, pars[i][0], want)
		}
	}
}

func TestExtractNumberingBullet(t *testing.T) {
	tables := bodyContent(t, opc.Options{}, numberedPar("1", 2, "deep"), numberingEntry())
	pars := model.Paragraphs(tables)
	if pars[0][0] != "\t\t--" {
		t.Errorf("bullet marker = %q, want %q", pars[0][0], "\t\t--")
	}
}

func TestExtractNumberingUndefinedListFallsBack(t *testing.T) {
	// numId 99 has no definition; the marker falls back to a plain bullet.
	tables := bodyContent(t, opc.Options{}, numberedPar("99", 0, "orphan"), numberingEntry())
	pars := model.Paragraphs(tables)
	if !reflect.DeepEqual(pars[0], par("--", "orphan")) {
		t.Errorf("paragraph = %v, want [-- orphan]", pars[0])
	}
}

func TestExtractNumberingWithoutNumberingPart(t *testing.T) {
	tables := bodyContent(t, opc.Options{}, numberedPar("1", 0, "item"))
	pars := model.Paragraphs(tables)
	if !reflect.DeepEqual(pars[0], par("--", "item")) {
		t.Errorf("paragraph = %v, want [-- item]", pars[0])
	}
}

func TestExtractFootnotes(t *testing.T) {
	entries := docEntries(`<w:p/>`,
		entry{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId2" Type="` + relType + `footnotes" Target="footnotes.xml"/>
</Relationships>`},
		entry{"word/footnotes.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:footnotes xmlns:w="` + wNS + `">
  <w:footnote w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:footnote>
  <w:footnote w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:footnote>
  <w:footnote w:id="2"><w:p><w:r><w:t>a note</w:t></w:r></w:p></w:footnote>
</w:footnotes>`},
	)
	pkg := openDoc(t, opc.Options{}, entries)
	tables := contentOf(t, pkg, opc.KindFootnotes)

	pars := model.Paragraphs(tables)
	if len(pars) != 1 {
		t.Fatalf("expected 1 paragraph (separators skipped), got %d: %v", len(pars), pars)
	}
	if !reflect.DeepEqual(pars[0], par("footnote2) ", "a note")) {
		t.Errorf("paragraph = %v, want [footnote2)  a note]", pars[0])
	}
}

func TestExtractParagraphStyles(t *testing.T) {
	tables := bodyContent(t, opc.Options{ParagraphStyles: true},
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>title</w:t></w:r></w:p>
		 <w:p><w:r><w:t>plain</w:t></w:r></w:p>`)

	pars := model.Paragraphs(tables)
	if !reflect.DeepEqual(pars[0], par("Heading1", "title")) {
		t.Errorf("styled paragraph = %v", pars[0])
	}
	if !reflect.DeepEqual(pars[1], par("", "plain")) {
		t.Errorf("unstyled paragraph = %v, want leading empty style run", pars[1])
	}
}

func TestExtractHTMLFormatting(t *testing.T) {
	tables := bodyContent(t, opc.Options{HTML: true},
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>bold &amp; brave</w:t></w:r>
		 <w:r><w:rPr><w:i/><w:u w:val="single"/></w:rPr><w:t>fancy</w:t></w:r>
		 <w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t>off</w:t></w:r></w:p>`)

	pars := model.Paragraphs(tables)
	want := par("<b>bold &amp; brave</b>", "<i><u>fancy</u></i>", "off")
	if !reflect.DeepEqual(pars[0], want) {
		t.Errorf("paragraph = %v, want %v", pars[0], want)
	}
}

func TestExtractHyperlink(t *testing.T) {
	entries := docEntries(
		`<w:p><w:hyperlink r:id="rId9"><w:r><w:t>click </w:t></w:r><w:r><w:t>here</w:t></w:r></w:hyperlink></w:p>`,
		entry{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId9" Type="` + relType + `hyperlink" Target="https://example.com" TargetMode="External"/>
</Relationships>`},
	)

	// Plain mode: runs flattened, no anchor.
	pkg := openDoc(t, opc.Options{}, entries)
	pars := model.Paragraphs(contentOf(t, pkg, opc.KindOfficeDocument))
	if !reflect.DeepEqual(pars[0], par("click here")) {
		t.Errorf("plain hyperlink = %v", pars[0])
	}

	// HTML mode: target resolved through the part's relationships.
	pkg = openDoc(t, opc.Options{HTML: true}, entries)
	pars = model.Paragraphs(contentOf(t, pkg, opc.KindOfficeDocument))
	want := par(`<a href="https://example.com">click here</a>`)
	if !reflect.DeepEqual(pars[0], want) {
		t.Errorf("html hyperlink = %v, want %v", pars[0], want)
	}
}

func TestExtractFormElements(t *testing.T) {
	tables := bodyContent(t, opc.Options{},
		`<w:p><w:r><w:fldChar w:fldCharType="begin">
		   <w:ffData><w:checkBox><w:checked/></w:checkBox></w:ffData>
		 </w:fldChar></w:r></w:p>
		 <w:p><w:r><w:fldChar w:fldCharType="begin">
		   <w:ffData><w:ddList>
		     <w:result w:val="1"/>
		     <w:listEntry w:val="red"/>
		     <w:listEntry w:val="green"/>
		   </w:ddList></w:ffData>
		 </w:fldChar></w:r></w:p>`)

	pars := model.Paragraphs(tables)
	if len(pars) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(pars))
	}
	if pars[0][0] != "☒" {
		t.Errorf("checkbox = %q, want checked box", pars[0][0])
	}
	if pars[1][0] != "green" {
		t.Errorf("dropdown = %q, want %q", pars[1][0], "green")
	}
}
