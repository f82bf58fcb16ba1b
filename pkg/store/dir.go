package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/srcweave/srcweave/pkg/types"
)

// indexPage is the path the site index is stored under.
const indexPage = "index.html"

// DirStore writes pages as files below a root directory, producing a
// site that can be opened directly in a browser.
//
// Only the page content reaches disk. On read, Kind and Source are derived
// from the path, Created is the file modification time and SourceID is zero.
type DirStore struct {
	root string
	mu   sync.Mutex
}

// NewDir creates root if needed and returns a store writing into it.
func NewDir(root string) (*DirStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", root)
	}
	return &DirStore{root: root}, nil
}

// Root returns the output directory.
func (d *DirStore) Root() string {
	return d.root
}

// PutPage writes the page content to <root>/<path>.
func (d *DirStore) PutPage(p *types.Page) error {
	if err := validatePath(p.Path); err != nil {
		return err
	}

	target := d.file(p.Path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", p.Path)
	}

	// Write then rename so readers never observe a truncated page.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".page-*")
	if err != nil {
		return errors.Wrapf(err, "writing %s", p.Path)
	}
	if _, err := tmp.Write(p.Content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", p.Path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", p.Path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", p.Path)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", p.Path)
	}
	return nil
}

// GetPage reads a page back from disk.
func (d *DirStore) GetPage(path string) (*types.Page, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	target := d.file(path)
	content, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrPageNotFound, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	p := pageFromPath(path, info)
	p.Content = content
	return p, nil
}

// ListPages returns every .html file under the root, ordered by path.
func (d *DirStore) ListPages() ([]*types.Page, error) {
	pages := []*types.Page{}
	err := filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		pages = append(pages, pageFromPath(filepath.ToSlash(rel), info))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", d.root)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages, nil
}

// PageExists reports whether the page file exists.
func (d *DirStore) PageExists(path string) (bool, error) {
	if err := validatePath(path); err != nil {
		return false, err
	}
	_, err := os.Stat(d.file(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "checking %s", path)
	}
	return true, nil
}

// Close is a no-op for the directory store.
func (d *DirStore) Close() error {
	return nil
}

func (d *DirStore) file(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(path))
}

func pageFromPath(path string, info fs.FileInfo) *types.Page {
	p := &types.Page{
		Path:    path,
		Kind:    types.PageFile,
		Source:  strings.TrimSuffix(path, ".html"),
		Created: info.ModTime(),
	}
	if path == indexPage {
		p.Kind = types.PageIndex
		p.Source = ""
	}
	return p
}
