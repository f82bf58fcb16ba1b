package types

import "time"

// Page kinds.
const (
	PageFile  = "file"
	PageIndex = "index"
)

// Page is one generated HTML document.
type Page struct {
	// Path is the slash-separated location of the page inside the site,
	// e.g. "pkg/foo/bar.go.html".
	Path string `json:"path"`
	// Source names the file the page was rendered from (empty for the index).
	Source   string    `json:"source,omitempty"`
	SourceID BlobID    `json:"source_id"`
	Kind     string    `json:"kind"`
	Content  []byte    `json:"-"`
	Created  time.Time `json:"created"`
}

// PagePath returns the site path of the page rendered for a source file.
func PagePath(source string) string {
	return source + ".html"
}
