package enum

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/srcweave/srcweave/pkg/types"
)

// FilesystemEnumerator enumerates source files from a filesystem directory.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultExtensions
	}
	if config.SkipDirs == nil {
		config.SkipDirs = DefaultSkipDirs
	}
	return &FilesystemEnumerator{config: config}
}

// fileEntry holds metadata collected during the walk phase.
type fileEntry struct {
	path string
	name string
}

// Enumerate walks the filesystem and yields source files.
// Phase 1: Walk directory tree and collect eligible file paths (sequential).
// Phase 2: Read files and invoke callback in parallel.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback func(file *types.SourceFile) error) error {
	var ignore *gitignore.GitIgnore
	gitignorePath := filepath.Join(e.config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}

	var files []fileEntry
	err := filepath.Walk(e.config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(e.config.Root, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if relPath == "." {
				return nil
			}
			if !e.config.IncludeHidden && (isHidden(info.Name()) || ignoredByGo(info.Name())) {
				return filepath.SkipDir
			}
			if slices.Contains(e.config.SkipDirs, info.Name()) {
				return filepath.SkipDir
			}
			if isModuleRoot(path) {
				return filepath.SkipDir
			}
			if ignore != nil && ignore.MatchesPath(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 && !e.config.FollowSymlinks {
			return nil
		}
		if !e.config.IncludeHidden && (isHidden(info.Name()) || ignoredByGo(info.Name())) {
			return nil
		}
		if !slices.Contains(e.config.Extensions, filepath.Ext(info.Name())) {
			return nil
		}
		if e.config.MaxFileSize > 0 && info.Size() > e.config.MaxFileSize {
			return nil
		}
		if ignore != nil && ignore.MatchesPath(relPath) {
			return nil
		}

		files = append(files, fileEntry{path: path, name: filepath.ToSlash(relPath)})
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "walking %s", e.config.Root)
	}

	numReaders := runtime.NumCPU()
	if numReaders < 1 {
		numReaders = 1
	}

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	pathsCh := make(chan fileEntry, numReaders*2)

	g.Go(func() error {
		defer close(pathsCh)
		for _, f := range files {
			select {
			case pathsCh <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < numReaders; i++ {
		g.Go(func() error {
			for f := range pathsCh {
				if err := e.processFile(ctx, f, callback); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// If the caller's context was cancelled but all goroutines finished
	// before noticing, propagate the cancellation.
	return origCtx.Err()
}

// processFile reads a single file and invokes the callback.
func (e *FilesystemEnumerator) processFile(ctx context.Context, f fileEntry, callback func(file *types.SourceFile) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	content, err := os.ReadFile(f.path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", f.path)
	}
	if isBinary(content) {
		return nil
	}

	return callback(&types.SourceFile{Name: f.name, Content: content})
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// ignoredByGo reports names the go command skips when matching packages.
func ignoredByGo(name string) bool {
	return strings.HasPrefix(name, "_")
}

// isModuleRoot reports whether dir holds a nested module.
func isModuleRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil
}

// isBinary detects if content is binary by checking first 8KB for null bytes.
func isBinary(content []byte) bool {
	checkSize := min(len(content), 8192)
	return bytes.IndexByte(content[:checkSize], 0) != -1
}
