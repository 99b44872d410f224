// Package rename is the public entry point for the renamer: a small set of
// pure functions over source text, backed by lang/token, lang/parser,
// lang/resolver, lang/selection and lang/rewrite.
package rename

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/selection"
)

// ScopeFilter restricts which scopes are eligible for renaming when no
// anchor binding is given.
type ScopeFilter = selection.ScopeFilter

const (
	FilterUnset    = selection.FilterUnset
	FilterLocal    = selection.FilterLocal
	FilterClass    = selection.FilterClass
	FilterGlobal   = selection.FilterGlobal
	FilterNonlocal = selection.FilterNonlocal
)

// Rules controls which binding(s) a rename targets.
type Rules struct {
	// ScopeFilter restricts candidate bindings by scope kind. Ignored when
	// AnchorBindingKey is set.
	ScopeFilter ScopeFilter
	// TargetFunctions, if non-empty, restricts candidate bindings to those
	// lexically contained in a function (or nested function) whose name
	// appears in this list. Ignored when AnchorBindingKey is set.
	TargetFunctions []string
	// AnchorBindingKey, if set, names exactly one binding unambiguously and
	// overrides ScopeFilter and TargetFunctions entirely.
	AnchorBindingKey *resolver.BindingKey
	// Debug, when true, emits per-decision diagnostics to Logger (or a
	// default stderr logger if Logger is nil).
	Debug bool
	// Logger receives debug output when Debug is true. Never written to
	// otherwise, keeping the package importable with zero ambient I/O.
	Logger *logrus.Logger
}

func (r Rules) logger() *logrus.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	return l
}

func (r Rules) selectionRules() selection.Rules {
	return selection.Rules{
		ScopeFilter:     r.ScopeFilter,
		TargetFunctions: r.TargetFunctions,
		Anchor:          r.AnchorBindingKey,
	}
}
