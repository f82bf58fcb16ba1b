// Package lexer splits Go source into a token stream that covers every byte
// of the file, as the renderer requires.
package lexer

import (
	"bytes"
	"go/scanner"
	"go/token"

	"github.com/srcweave/srcweave/pkg/types"
)

// Tokenize scans a Go source file. Lexemes become tokens of their own kind;
// the bytes between them (whitespace, a byte order mark, anything the scanner
// skips) become KindSpace tokens. Automatically inserted semicolons are not
// tokens since they have no text. Scan errors do not stop tokenization: the
// offending bytes surface as KindIllegal or gap tokens.
func Tokenize(file *types.SourceFile) ([]types.Token, error) {
	src := file.Content
	if len(src) == 0 {
		return nil, nil
	}

	fset := token.NewFileSet()
	tf := fset.AddFile(file.Name, -1, len(src))

	var s scanner.Scanner
	s.Init(tf, src, func(token.Position, string) {}, scanner.ScanComments)

	var tokens []types.Token
	next := 0
	emit := func(start, end int, kind string) {
		if start > next {
			tokens = append(tokens, types.Token{
				Interval: types.Interval{Filename: file.Name, Start: next, End: start - 1},
				Kind:     types.KindSpace,
			})
		}
		tokens = append(tokens, types.Token{
			Interval: types.Interval{Filename: file.Name, Start: start, End: end - 1},
			Kind:     kind,
		})
		next = end
	}

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit != ";" {
			continue
		}
		start := tf.Offset(pos)
		if start < next {
			continue
		}
		end := extent(src, start, tok, lit)
		if end <= start {
			continue
		}
		emit(start, end, kindOf(tok))
	}

	if next < len(src) {
		tokens = append(tokens, types.Token{
			Interval: types.Interval{Filename: file.Name, Start: next, End: len(src) - 1},
			Kind:     types.KindSpace,
		})
	}
	return tokens, nil
}

// extent returns the exclusive end offset of the lexeme starting at start.
// Comments and raw strings are measured against the source because the
// scanner strips carriage returns from their literal text.
func extent(src []byte, start int, tok token.Token, lit string) int {
	switch {
	case tok == token.COMMENT && bytes.HasPrefix(src[start:], []byte("//")):
		if i := bytes.IndexByte(src[start:], '\n'); i >= 0 {
			end := start + i
			if end > start && src[end-1] == '\r' {
				end--
			}
			return end
		}
		return len(src)
	case tok == token.COMMENT:
		if i := bytes.Index(src[start+2:], []byte("*/")); i >= 0 {
			return start + 2 + i + 2
		}
		return len(src)
	case tok == token.STRING && src[start] == '`':
		if i := bytes.IndexByte(src[start+1:], '`'); i >= 0 {
			return start + 1 + i + 1
		}
		return len(src)
	case lit != "":
		return min(start+len(lit), len(src))
	default:
		return min(start+len(tok.String()), len(src))
	}
}

func kindOf(tok token.Token) string {
	switch {
	case tok == token.COMMENT:
		return types.KindComment
	case tok == token.IDENT:
		return types.KindIdent
	case tok == token.STRING || tok == token.CHAR:
		return types.KindString
	case tok.IsLiteral():
		return types.KindLiteral
	case tok.IsKeyword():
		return types.KindKeyword
	case tok.IsOperator():
		return types.KindOperator
	default:
		return types.KindIllegal
	}
}
