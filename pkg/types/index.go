package types

// Pair is one oracle answer: where an identifier occurs and where the entity
// it names is defined. A nil side means the oracle could not locate it.
type Pair struct {
	Occurrence *Interval `json:"occurrence,omitempty"`
	Definition *Interval `json:"definition,omitempty"`
}

// Definition is a deduplicated definition site with a stable, dense id.
type Definition struct {
	ID       int      `json:"id"`
	Interval Interval `json:"interval"`
}

// ActiveRegion is a reference occurrence pointing at a Definition.
type ActiveRegion struct {
	Interval     Interval `json:"interval"`
	DefinitionID int      `json:"definition_id"`
}

// Chunk is text to splice into rendered output at a byte offset.
type Chunk struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// Wrapper brackets a region of rendered output. Prefix is emitted before the
// token starting at Prefix.Offset, Postfix after the token ending at Postfix.Offset.
type Wrapper struct {
	Prefix  Chunk `json:"prefix"`
	Postfix Chunk `json:"postfix"`
}
