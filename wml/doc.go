// Package wml decodes WordprocessingML content: it turns a content part's
// XML tree into the nested positional structure defined by package model,
// merges consecutive duplicate-formatted runs, decodes the numbering-format
// table, and infers text stand-ins for form elements (checkboxes, dropdown
// lists).
//
// The routines here are wired into the opc core as collaborators; they
// operate on element trees and never touch the archive directly.
package wml
