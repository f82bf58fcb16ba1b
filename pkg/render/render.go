// Package render merges a token stream with a set of wrappers into one
// annotated string.
package render

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/srcweave/srcweave/pkg/types"
)

// Option configures Render.
type Option func(*config)

type config struct {
	escape func(string) string
	strict bool
}

// WithEscaper transforms each token's text before it is written. Wrapper text
// is written verbatim.
func WithEscaper(fn func(string) string) Option {
	return func(c *config) {
		c.escape = fn
	}
}

// WithStrictNesting rejects wrapper sets that are not laminar instead of
// emitting crossed markup.
func WithStrictNesting() Option {
	return func(c *config) {
		c.strict = true
	}
}

// Render writes every token's text in order and splices wrapper text around
// it. A wrapper's prefix goes before the token starting at its prefix offset
// and its postfix after the token ending at its postfix offset.
//
// Wrappers are ordered by prefix offset ascending and, among equal starts,
// postfix offset descending, so the longest wrapper is outermost. Closing is
// driven by a stack, which yields well-nested output only when the wrapper
// intervals form a laminar family. Wrappers whose offsets never meet a token
// boundary are dropped without notice, and a postfix is only ever emitted
// after its prefix.
//
// A token whose text cannot be retrieved fails the whole render; no partial
// output is returned.
func Render(src types.SnippetSource, tokens []types.Token, wrappers []types.Wrapper, opts ...Option) (string, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.strict {
		if err := CheckLaminar(wrappers); err != nil {
			return "", err
		}
	}

	queue := Sort(wrappers)
	var stack []types.Chunk

	var buf strings.Builder
	for _, tok := range tokens {
		// A head that starts before this token began inside an earlier one and can never fire.
		for len(queue) > 0 && queue[0].Prefix.Offset < tok.Start {
			queue = queue[1:]
		}
		for len(queue) > 0 && queue[0].Prefix.Offset == tok.Start {
			w := queue[0]
			queue = queue[1:]
			buf.WriteString(w.Prefix.Text)
			stack = append(stack, w.Postfix)
		}

		text, err := src.Snippet(tok.Interval)
		if err != nil {
			return "", errors.Wrapf(err, "token %s", tok.Interval)
		}
		if cfg.escape != nil {
			text = cfg.escape(text)
		}
		buf.WriteString(text)

		for len(stack) > 0 && stack[len(stack)-1].Offset == tok.End {
			buf.WriteString(stack[len(stack)-1].Text)
			stack = stack[:len(stack)-1]
		}
	}
	return buf.String(), nil
}

// Sort returns a copy of wrappers in render order: prefix offset ascending,
// then postfix offset descending. Ties keep their input order.
func Sort(wrappers []types.Wrapper) []types.Wrapper {
	sorted := append([]types.Wrapper(nil), wrappers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Prefix.Offset != b.Prefix.Offset {
			return a.Prefix.Offset < b.Prefix.Offset
		}
		return a.Postfix.Offset > b.Postfix.Offset
	})
	return sorted
}
