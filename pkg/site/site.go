// Package site wraps annotated source into standalone HTML pages.
package site

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/srcweave/srcweave/pkg/types"
)

// IndexPath is the site path of the index page.
const IndexPath = "index.html"

// Meta is shown in every page header.
type Meta struct {
	Title    string
	Revision string
}

// Entry is one line of the index page.
type Entry struct {
	Name        string
	Definitions int
	References  int
}

// Href returns the link from the index to the entry's page.
func (e Entry) Href() string {
	return types.PagePath(e.Name)
}

var (
	fileTmpl  = template.Must(template.New("file").Parse(fileHTML))
	indexTmpl = template.Must(template.New("index").Parse(indexHTML))
)

// FilePage renders the page for one source file. annotated must already be
// HTML: escaped source text with markup spliced in.
func FilePage(meta Meta, name, annotated string) ([]byte, error) {
	data := struct {
		Meta
		Name  string
		Index string
		Lines []int
		Code  template.HTML
	}{
		Meta:  meta,
		Name:  name,
		Index: RootPrefix(name) + IndexPath,
		Lines: lineNumbers(annotated),
		Code:  template.HTML(annotated),
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "rendering page for %s", name)
	}
	return buf.Bytes(), nil
}

// IndexPage renders the listing of every rendered file.
func IndexPage(meta Meta, entries []Entry) ([]byte, error) {
	data := struct {
		Meta
		Entries []Entry
	}{meta, entries}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "rendering index")
	}
	return buf.Bytes(), nil
}

// RootPrefix returns the relative prefix leading from the page of name back
// to the site root, e.g. "../../" for "a/b/c.go".
func RootPrefix(name string) string {
	return strings.Repeat("../", strings.Count(name, "/"))
}

// lineNumbers counts lines of the rendered text. Markup never contains
// newlines, so counting them in the annotated text counts source lines.
func lineNumbers(text string) []int {
	n := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		n++
	}
	lines := make([]int, n)
	for i := range lines {
		lines[i] = i + 1
	}
	return lines
}

const style = `
body { font-family: sans-serif; margin: 0; }
header { padding: .5em 1em; background: #f3f3f3; border-bottom: 1px solid #ddd; }
header .rev { color: #777; font-size: .9em; margin-left: 1em; }
.listing { display: flex; font-family: monospace; font-size: 13px; line-height: 1.4; }
.listing pre { margin: 0; padding: .5em; }
.lines { color: #999; text-align: right; user-select: none; border-right: 1px solid #eee; }
a.ref { color: inherit; text-decoration: none; border-bottom: 1px dotted #88a; }
a.ref:hover { background: #eef; }
a.def:target { background: #ff8; }
table { border-collapse: collapse; margin: 1em; }
td { padding: .2em 1em; }
td.num { text-align: right; color: #777; }
`

const fileHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}{{if .Title}} - {{.Title}}{{end}}</title>
<style>` + style + `</style>
</head>
<body>
<header><a href="{{.Index}}">{{if .Title}}{{.Title}}{{else}}index{{end}}</a> / {{.Name}}{{if .Revision}}<span class="rev">{{.Revision}}</span>{{end}}</header>
<div class="listing">
<pre class="lines">{{range .Lines}}<a id="L{{.}}" href="#L{{.}}">{{.}}</a>
{{end}}</pre>
<pre class="code">{{.Code}}</pre>
</div>
</body>
</html>
`

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}}{{else}}index{{end}}</title>
<style>` + style + `</style>
</head>
<body>
<header>{{if .Title}}{{.Title}}{{else}}index{{end}}{{if .Revision}}<span class="rev">{{.Revision}}</span>{{end}}</header>
<table>
<tr><th>File</th><th>Definitions</th><th>References</th></tr>
{{range .Entries}}<tr><td><a href="{{.Href}}">{{.Name}}</a></td><td class="num">{{.Definitions}}</td><td class="num">{{.References}}</td></tr>
{{end}}</table>
</body>
</html>
`
