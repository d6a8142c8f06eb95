package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML document rooted at <html>.
type Document struct {
	root *Element
}

// NewDocument creates an empty document with <html>, <head> and <body>.
func NewDocument() *Document {
	root := NewElement("html")
	_ = root.AppendChild(NewElement("head"))
	_ = root.AppendChild(NewElement("body"))
	return &Document{root: root}
}

// ParseHTML parses an HTML document.
func ParseHTML(htmlContent string) (*Document, error) {
	return ParseHTMLReader(strings.NewReader(htmlContent))
}

// ParseHTMLReader parses an HTML document read from r.
func ParseHTMLReader(r io.Reader) (*Document, error) {
	netDoc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	for c := netDoc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "html" {
			root := NewElement(c.Data)
			copyAttributes(c, root)
			convertHTMLTree(c, root)
			return &Document{root: root}, nil
		}
	}
	// html.Parse always synthesizes <html>.
	return NewDocument(), nil
}

// convertHTMLTree converts the children of an html.Node into elements
// under parent. Text is folded into the nearest element; comments and
// doctypes are dropped.
func convertHTMLTree(src *html.Node, parent *Element) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			parent.text.WriteString(c.Data)
		case html.ElementNode:
			el := NewElement(c.Data)
			copyAttributes(c, el)
			_ = parent.AppendChild(el)
			convertHTMLTree(c, el)
		}
	}
}

func copyAttributes(src *html.Node, el *Element) {
	for _, attr := range src.Attr {
		name := attr.Key
		if attr.Namespace != "" {
			name = attr.Namespace + ":" + attr.Key
		}
		el.SetAttribute(name, attr.Val)
	}
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Element {
	return d.root
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *Element {
	return d.child("head")
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Element {
	return d.child("body")
}

func (d *Document) child(localName string) *Element {
	for _, c := range d.root.children {
		if c.localName == localName {
			return c
		}
	}
	return nil
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	title, _ := d.root.QuerySelector("title")
	if title == nil {
		return ""
	}
	return strings.TrimSpace(title.TextContent())
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(localName string) *Element {
	return NewElement(localName)
}

// GetElementByID returns the first element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.root.walkDescendants(func(el *Element) bool {
		if el.ID() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelector returns the first element matching selector, or nil.
func (d *Document) QuerySelector(selector string) (*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	if list.matches(d.root) {
		return d.root, nil
	}
	return d.root.QuerySelector(selector)
}

// QuerySelectorAll returns every element matching selector in tree order.
func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var found []*Element
	if list.matches(d.root) {
		found = append(found, d.root)
	}
	rest, _ := d.root.QuerySelectorAll(selector)
	return append(found, rest...), nil
}

// Scripts returns the source of every inline classic script in document
// order. External scripts are skipped.
func (d *Document) Scripts() []string {
	var scripts []string
	d.root.walkDescendants(func(el *Element) bool {
		if el.localName != "script" || el.HasAttribute("src") {
			return true
		}
		switch strings.ToLower(strings.TrimSpace(el.GetAttribute("type"))) {
		case "", "text/javascript", "application/javascript":
			scripts = append(scripts, el.TextContent())
		}
		return true
	})
	return scripts
}
