package rename

import "github.com/mna/pyrename/lang/resolver"

// Diagnostic is a recorded, non-fatal anomaly: only ParseError aborts with
// an error return, everything else — unresolved names, malformed
// global/nonlocal declarations, an empty selection, advisory collision
// risks — is returned as data instead.
type Diagnostic = resolver.Diagnostic

// Diagnostics is an ordered collection of Diagnostic records.
type Diagnostics []Diagnostic

const (
	DiagUnresolvedName     = resolver.DiagUnresolvedName
	DiagInvalidDeclaration = resolver.DiagInvalidDeclaration
	DiagSelectionEmpty     = resolver.DiagSelectionEmpty
	DiagCollisionRisk      = resolver.DiagCollisionRisk
)
