package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title> Long page </title></head>
<body style="height: 4000px">
  <div class="scrollbar" data-scrollbar="container">
    <div class="scrollbar__thumb" data-scrollbar="thumb"></div>
  </div>
  <p id="intro">Hello <b>world</b></p>
  <script>var a = 1;</script>
  <script src="ext.js"></script>
  <script type="text/template">ignored</script>
</body>
</html>`

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML(testPage)
	require.NoError(t, err)

	assert.Equal(t, "html", doc.DocumentElement().LocalName())
	require.NotNil(t, doc.Head())
	require.NotNil(t, doc.Body())
	assert.Equal(t, "Long page", doc.Title())
	assert.Equal(t, 4000.0, doc.Body().ScrollHeight())

	intro := doc.GetElementByID("intro")
	require.NotNil(t, intro)
	assert.Equal(t, "P", intro.TagName())
	assert.Equal(t, "Hello world", intro.TextContent())
}

func TestParseHTMLFragment(t *testing.T) {
	doc, err := ParseHTML(`<div id="x"></div>`)
	require.NoError(t, err)
	require.NotNil(t, doc.Body(), "the parser synthesizes the document skeleton")

	el, err := doc.QuerySelector("#x")
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Equal(t, doc.Body(), el.Parent())
}

func TestDocumentScripts(t *testing.T) {
	doc, err := ParseHTML(testPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"var a = 1;"}, doc.Scripts())
}

func TestDocumentQuerySelector(t *testing.T) {
	doc, err := ParseHTML(testPage)
	require.NoError(t, err)

	container, err := doc.QuerySelector(`[data-scrollbar="container"]`)
	require.NoError(t, err)
	require.NotNil(t, container)
	assert.True(t, container.HasClass("scrollbar"))

	thumb, err := container.QuerySelector(`[data-scrollbar="thumb"]`)
	require.NoError(t, err)
	require.NotNil(t, thumb)
	assert.True(t, container.Contains(thumb))
	assert.False(t, thumb.Contains(container))

	root, err := doc.QuerySelector("html")
	require.NoError(t, err)
	assert.Equal(t, doc.DocumentElement(), root)

	missing, err := doc.QuerySelector(".nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = doc.QuerySelector("div[")
	var domErr *DOMError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "SyntaxError", domErr.Name)
}

func TestAppendChild(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")

	require.NoError(t, doc.Body().AppendChild(outer))
	require.NoError(t, outer.AppendChild(inner))

	err := inner.AppendChild(outer)
	var domErr *DOMError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "HierarchyRequestError", domErr.Name)

	// Re-parenting detaches from the old parent.
	require.NoError(t, doc.Body().AppendChild(inner))
	assert.Empty(t, outer.Children())
	assert.Equal(t, doc.Body(), inner.Parent())

	require.NoError(t, doc.Body().RemoveChild(inner))
	assert.Nil(t, inner.Parent())
	require.Error(t, doc.Body().RemoveChild(inner))
}
