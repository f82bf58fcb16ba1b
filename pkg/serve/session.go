package serve

import (
	"html"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/srcweave/srcweave/pkg/index"
	"github.com/srcweave/srcweave/pkg/lexer"
	"github.com/srcweave/srcweave/pkg/logging"
	"github.com/srcweave/srcweave/pkg/render"
	"github.com/srcweave/srcweave/pkg/types"
)

// DefaultCacheSize is the number of token streams a Session keeps.
const DefaultCacheSize = 256

// cacheKey identifies a token stream. Tokens carry the filename, so the
// same content under two names is tokenized twice.
type cacheKey struct {
	filename string
	id       types.BlobID
}

// Session answers render and index requests. Token streams are cached by
// content so an editor re-rendering the same buffer with new wrappers skips
// tokenizing.
type Session struct {
	tokens *lru.Cache[cacheKey, []types.Token]
	log    *zap.Logger
}

// NewSession creates a session caching up to size token streams.
func NewSession(size int, log *zap.Logger) (*Session, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, []types.Token](size)
	if err != nil {
		return nil, errors.Wrap(err, "creating token cache")
	}
	return &Session{tokens: cache, log: logging.OrNop(log)}, nil
}

// Render annotates one file.
func (s *Session) Render(p RenderPayload) (*RenderResult, error) {
	if p.Filename == "" {
		return nil, errors.New("filename is required")
	}
	file := &types.SourceFile{Name: p.Filename, Content: []byte(p.Content)}

	key := cacheKey{filename: p.Filename, id: file.ID()}
	tokens, cached := s.tokens.Get(key)
	if !cached {
		var err error
		tokens, err = lexer.Tokenize(file)
		if err != nil {
			return nil, errors.Wrapf(err, "tokenizing %s", p.Filename)
		}
		s.tokens.Add(key, tokens)
	}

	var opts []render.Option
	if !p.Raw {
		opts = append(opts, render.WithEscaper(html.EscapeString))
	}
	if p.Strict {
		opts = append(opts, render.WithStrictNesting())
	}
	out, err := render.Render(file, tokens, p.Wrappers, opts...)
	if err != nil {
		return nil, err
	}

	s.log.Debug("rendered", logging.File(p.Filename), zap.Bool("cached", cached), zap.Int("wrappers", len(p.Wrappers)))
	return &RenderResult{HTML: out, Tokens: len(tokens), Cached: cached}, nil
}

// Index builds definitions and regions from raw pairs.
func (s *Session) Index(p IndexPayload) *IndexResult {
	regions, defs, stats := index.BuildWithStats(p.Pairs)
	return &IndexResult{Definitions: defs, Regions: regions, Stats: stats}
}

// CachedFiles returns the number of cached token streams.
func (s *Session) CachedFiles() int {
	return s.tokens.Len()
}
