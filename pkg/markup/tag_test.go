package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchorName(t *testing.T) {
	assert.Equal(t, "def-0", AnchorName(0))
	assert.Equal(t, "def-42", AnchorName(42))
}

func TestTag_Anchor(t *testing.T) {
	tag := Anchor(7)
	assert.Equal(t, `<a id="def-7" class="def">`, tag.Open())
	assert.Equal(t, "</a>", tag.Close())
}

func TestTag_Link(t *testing.T) {
	tag := Link("../b.go.html#def-3", "b.go:4:6")
	assert.Equal(t, `<a href="../b.go.html#def-3" title="b.go:4:6" class="ref">`, tag.Open())
	assert.Equal(t, "</a>", tag.Close())
}

func TestTag_EscapesAttributes(t *testing.T) {
	tag := Link(`x.go.html#"><script>`, "")
	assert.Equal(t, `<a href="x.go.html#&#34;&gt;&lt;script&gt;" class="ref">`, tag.Open())
}

func TestTag_NoClasses(t *testing.T) {
	tag := Tag{Kind: KindAnchor, Name: "def-1"}
	assert.Equal(t, `<a id="def-1">`, tag.Open())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "anchor", KindAnchor.String())
	assert.Equal(t, "link", KindLink.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
