// Package rewrite implements the rewrite engine: computing, from a resolved
// index and a selected set of bindings, the byte-range edits needed to
// rename every selected occurrence, and applying them with a
// position-preserving splice writer rather than a general unparser.
package rewrite

import (
	"sort"
	"strings"

	"github.com/mna/pyrename/lang/token"
)

// Edit replaces the source bytes in [Start, End) with Text.
type Edit struct {
	Start token.Pos
	End   token.Pos
	Text  string
}

// Splice reconstructs source text by copying src verbatim and substituting
// only the byte ranges named by edits. Because every AST node retains its
// original byte span and the rewrite engine only ever changes identifier
// spellings (never structure), this trivially preserves the formatting of
// every token the rewrite did not touch — there is no pretty-printer to get
// wrong.
func Splice(file *token.File, src []byte, edits []Edit) string {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	cursor := 0
	for _, e := range sorted {
		start := file.Offset(e.Start)
		end := file.Offset(e.End)
		if start < cursor {
			// Overlapping edits should never occur (occurrences are
			// disjoint identifier spellings); skip defensively rather than
			// corrupt output.
			continue
		}
		b.Write(src[cursor:start])
		b.WriteString(e.Text)
		cursor = end
	}
	b.Write(src[cursor:])
	return b.String()
}
