package opc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoEntry indicates that a named entry does not exist in the archive.
// Several resources are optional (a part's rels file, the numbering part,
// individual image entries); their absence is detected with errors.Is
// against this sentinel.
var ErrNoEntry = errors.New("no such archive entry")

// NotFoundError is returned when a single-valued type lookup matches no part.
type NotFoundError struct {
	Kind    Kind
	Tag     string // raw tag when the lookup was by tag
	Archive string
}

func (e *NotFoundError) Error() string {
	tag := e.Tag
	if tag == "" {
		tag = e.Kind.String()
	}
	return fmt.Sprintf("no part of type %q in archive %s", tag, e.Archive)
}

// Warning is a non-fatal diagnostic. Ambiguous lookups and failed best-effort
// normalization emit warnings instead of errors; the operation still returns
// a usable value. Each warning carries enough context (archive, part path,
// requested type) to diagnose without re-running.
type Warning struct {
	Op     string // operation that produced the warning
	Detail string
}

func (w Warning) String() string {
	return w.Op + ": " + w.Detail
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
