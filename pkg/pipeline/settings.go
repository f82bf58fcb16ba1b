package pipeline

import (
	"go.uber.org/zap"

	"github.com/srcweave/srcweave/pkg/config"
	"github.com/srcweave/srcweave/pkg/store"
)

// FromSettings builds a Config for root from loaded settings.
func FromSettings(root string, s *config.Config, st store.Store, log *zap.Logger) Config {
	return Config{
		Root:          root,
		Store:         st,
		Patterns:      s.Patterns,
		Tests:         s.Tests,
		IncludeHidden: s.IncludeHidden,
		MaxFileSize:   s.MaxFileSize,
		Extensions:    s.Extensions,
		SkipDirs:      s.SkipDirs,
		Workers:       s.Workers,
		StrictNesting: s.StrictNesting,
		Title:         s.Title,
		Logger:        log,
	}
}
