package rewrite

import (
	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/token"
)

// Plan computes the edits needed to rename every occurrence of target whose
// resolved binding key is in selected, to replacement. It covers every
// occurrence kind the indexer records uniformly: Name loads/stores/dels,
// function/class def names, formal parameters, import aliases,
// except-handler names, and global/nonlocal declaration name-lists —
// because lang/resolver already reduced all of these to the same
// Occurrence shape, the rewrite engine itself needs no per-construct
// special-casing, unlike a rewriter built directly over node-shaped
// attribute access.
func Plan(idx *resolver.Index, target, replacement string, selected map[resolver.BindingKey]bool) []Edit {
	var edits []Edit
	for _, occ := range idx.Occurrences {
		if occ.Name != target {
			continue
		}
		if !selected[occ.Key] {
			continue
		}
		edits = append(edits, Edit{
			Start: occ.Pos,
			End:   occ.Pos + token.Pos(len(occ.Name)),
			Text:  replacement,
		})
	}
	return edits
}

// Apply is the convenience entry point combining Plan and Splice.
func Apply(file *token.File, src []byte, idx *resolver.Index, target, replacement string, selected map[resolver.BindingKey]bool) string {
	edits := Plan(idx, target, replacement, selected)
	if len(edits) == 0 {
		return string(src)
	}
	return Splice(file, src, edits)
}
