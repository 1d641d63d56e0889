package model

import "strings"

// Paragraph is a list of text runs.
type Paragraph []string

// Cell is a list of paragraphs inside one table cell.
type Cell []Paragraph

// Row is a list of cells.
type Row []Cell

// Table is a list of rows. Loose paragraphs outside any table are wrapped in
// a single-row, single-cell table so document order is preserved uniformly.
type Table []Row

// JoinRuns returns a deep copy of tables with every paragraph's runs joined
// into a single run.
func JoinRuns(tables []Table) []Table {
	out := make([]Table, len(tables))
	for i, table := range tables {
		out[i] = make(Table, len(table))
		for j, row := range table {
			out[i][j] = make(Row, len(row))
			for k, cell := range row {
				out[i][j][k] = make(Cell, len(cell))
				for l, par := range cell {
					out[i][j][k][l] = Paragraph{strings.Join(par, "")}
				}
			}
		}
	}
	return out
}

// Paragraphs returns every paragraph in document order.
func Paragraphs(tables []Table) []Paragraph {
	var out []Paragraph
	for _, table := range tables {
		for _, row := range table {
			for _, cell := range row {
				out = append(out, cell...)
			}
		}
	}
	return out
}

// Text joins every paragraph's runs and separates paragraphs with blank
// lines. skipFirstRun drops the leading run of each paragraph; it is used
// when paragraph-style descriptors have been inserted as the first run.
func Text(tables []Table, skipFirstRun bool) string {
	pars := Paragraphs(tables)
	joined := make([]string, 0, len(pars))
	for _, par := range pars {
		if skipFirstRun {
			if len(par) == 0 {
				joined = append(joined, "")
				continue
			}
			par = par[1:]
		}
		joined = append(joined, strings.Join(par, ""))
	}
	return strings.Join(joined, "\n\n")
}
