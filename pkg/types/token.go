package types

// Token kinds produced by the tokenizer. Kinds only drive styling; the
// renderer treats every token the same way.
const (
	KindSpace    = "space"
	KindComment  = "comment"
	KindIdent    = "ident"
	KindKeyword  = "keyword"
	KindLiteral  = "literal"
	KindString   = "string"
	KindOperator = "operator"
	KindIllegal  = "illegal"
)

// Token is a minimal lexical unit with a known location.
// Its text is retrieved from a SnippetSource at render time.
type Token struct {
	Interval
	Kind string `json:"kind,omitempty"`
}
