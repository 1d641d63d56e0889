// Package model provides the intermediate representation (IR) for extracted
// document content.
//
// WordprocessingML documents interleave loose paragraphs and tables, so all
// extracted text is held in a uniform nested positional structure:
//
//	[]Table      // one entry per table (loose paragraphs become a 1x1 table)
//	  Table      // rows
//	    Row      // cells
//	      Cell   // paragraphs
//	        Paragraph // text runs
//
// Keeping runs separate preserves formatting boundaries for callers that need
// them; the helpers in this package collapse the structure into joined
// paragraphs or plain text.
package model
