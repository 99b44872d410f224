package token

// Value carries the position and literal text of a scanned token. IDENT,
// INT, FLOAT and STRING tokens and keywords populate Raw with their source
// text; for all other tokens Raw is empty and the token kind alone is
// sufficient.
type Value struct {
	Pos Pos
	Raw string
}

// Literal returns the text to print for a token of this kind carrying v, for
// diagnostic output.
func (tok Token) Literal(v Value) string {
	switch tok {
	case IDENT, INT, FLOAT, STRING:
		return v.Raw
	default:
		return ""
	}
}
