package store

import (
	"github.com/cockroachdb/errors"
)

// ExportStats tracks export statistics.
type ExportStats struct {
	Pages int
	Bytes int64
}

// Export copies every page of src into dst. Pages already present in dst
// are overwritten.
func Export(src, dst Store) (*ExportStats, error) {
	pages, err := src.ListPages()
	if err != nil {
		return nil, errors.Wrap(err, "listing source pages")
	}

	stats := &ExportStats{}
	for _, meta := range pages {
		p, err := src.GetPage(meta.Path)
		if err != nil {
			return stats, errors.Wrapf(err, "reading %s", meta.Path)
		}
		if err := dst.PutPage(p); err != nil {
			return stats, errors.Wrapf(err, "writing %s", meta.Path)
		}
		stats.Pages++
		stats.Bytes += int64(len(p.Content))
	}

	return stats, nil
}
