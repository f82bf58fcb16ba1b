// Package markup formats the two kinds of markup srcweave splices into
// rendered source: definition anchors and reference links.
package markup

import (
	"html"
	"strconv"
	"strings"
)

// Kind selects the markup variant.
type Kind int

const (
	// KindAnchor marks a definition site.
	KindAnchor Kind = iota
	// KindLink marks a reference to a definition.
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindLink:
		return "link"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Class names attached to each kind.
const (
	ClassDefinition = "def"
	ClassReference  = "ref"
)

// Tag is an anchor or link element. Name is used by anchors, Href and Title by links.
type Tag struct {
	Kind    Kind
	Name    string
	Href    string
	Title   string
	Classes []string
}

// AnchorName returns the anchor identity of a definition id, "def-<id>".
func AnchorName(id int) string {
	return "def-" + strconv.Itoa(id)
}

// Anchor builds the tag marking definition id.
func Anchor(id int) Tag {
	return Tag{Kind: KindAnchor, Name: AnchorName(id), Classes: []string{ClassDefinition}}
}

// Link builds the tag for a reference pointing at href.
func Link(href, title string) Tag {
	return Tag{Kind: KindLink, Href: href, Title: title, Classes: []string{ClassReference}}
}

// Open renders the opening element.
func (t Tag) Open() string {
	var b strings.Builder
	b.WriteString("<a")
	switch t.Kind {
	case KindAnchor:
		writeAttr(&b, "id", t.Name)
	case KindLink:
		writeAttr(&b, "href", t.Href)
		writeAttr(&b, "title", t.Title)
	}
	if len(t.Classes) > 0 {
		writeAttr(&b, "class", strings.Join(t.Classes, " "))
	}
	b.WriteByte('>')
	return b.String()
}

// Close renders the closing element.
func (t Tag) Close() string {
	return "</a>"
}

func writeAttr(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}
