package enum

import (
	"context"
	"sort"
	"sync"

	"github.com/srcweave/srcweave/pkg/types"
)

// Enumerator discovers source files to render.
type Enumerator interface {
	// Enumerate yields source files. The callback may be invoked from
	// several goroutines at once.
	Enumerate(ctx context.Context, callback func(file *types.SourceFile) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration. Yielded file names are
	// slash-separated and relative to it.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .) and
	// those the go command ignores (starting with _).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Extensions restricts enumeration to these file extensions.
	// Defaults to DefaultExtensions.
	Extensions []string

	// SkipDirs names directories that are never entered.
	// Defaults to DefaultSkipDirs.
	SkipDirs []string
}

// DefaultExtensions are the extensions rendered when Config.Extensions is empty.
var DefaultExtensions = []string{".go"}

// DefaultSkipDirs hold code the go command ignores or does not build as part of the module.
var DefaultSkipDirs = []string{"vendor", "testdata"}

// Collect runs e and returns every yielded file sorted by name.
func Collect(ctx context.Context, e Enumerator) ([]*types.SourceFile, error) {
	var (
		mu    sync.Mutex
		files []*types.SourceFile
	)
	err := e.Enumerate(ctx, func(f *types.SourceFile) error {
		mu.Lock()
		defer mu.Unlock()
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
