package pipeline

import (
	"time"

	"github.com/srcweave/srcweave/pkg/enum"
	"github.com/srcweave/srcweave/pkg/index"
)

// Failure stages.
const (
	StageTokenize = "tokenize"
	StageRender   = "render"
	StagePage     = "page"
)

// Failure records a file that got no page.
type Failure struct {
	File  string `json:"file"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// Result summarizes one Generate run.
type Result struct {
	Files    int           `json:"files"`
	Pages    int           `json:"pages"`
	Failures []Failure     `json:"failures"`
	Index    index.Stats   `json:"index"`
	Revision enum.Revision `json:"revision"`
	Duration time.Duration `json:"duration"`
}
