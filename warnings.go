package docpack

import "docpack/opc"

// Warning is a non-fatal diagnostic recorded during extraction. Degraded
// results (an unmerged tree, empty core properties) come with a Warning
// rather than an error.
type Warning = opc.Warning

// FormatWarnings joins warnings into a readable multi-line string.
func FormatWarnings(warnings []Warning) string {
	return opc.FormatWarnings(warnings)
}
