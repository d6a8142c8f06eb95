package dom

import (
	"strings"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node in the document tree. Text is kept per element rather
// than as separate nodes.
type Element struct {
	*EventTarget

	localName  string
	attributes []Attr
	style      *CSSStyleDeclaration
	parent     *Element
	children   []*Element
	text       strings.Builder

	scrollWidth, scrollHeight float64
	hasScrollSize             bool
}

// NewElement creates a detached element.
func NewElement(localName string) *Element {
	return &Element{
		EventTarget: NewEventTarget(),
		localName:   strings.ToLower(localName),
	}
}

// LocalName returns the lowercase tag name.
func (e *Element) LocalName() string {
	return e.localName
}

// TagName returns the uppercase tag name.
func (e *Element) TagName() string {
	return strings.ToUpper(e.localName)
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// ClassList returns the whitespace-separated class names.
func (e *Element) ClassList() []string {
	return strings.Fields(e.GetAttribute("class"))
}

// HasClass reports whether name is one of the element's classes.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.ClassList() {
		if c == name {
			return true
		}
	}
	return false
}

// GetAttribute returns an attribute value, or "" if it is absent.
func (e *Element) GetAttribute(name string) string {
	name = strings.ToLower(name)
	for _, a := range e.attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, a := range e.attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttribute sets an attribute. Setting "style" replaces the inline style.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	e.setAttribute(name, value)
	if name == "style" && e.style != nil {
		e.style.reset()
		e.style.parse(value)
	}
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	e.removeAttribute(name)
	if name == "style" && e.style != nil {
		e.style.reset()
	}
}

func (e *Element) setAttribute(name, value string) {
	for i := range e.attributes {
		if e.attributes[i].Name == name {
			e.attributes[i].Value = value
			return
		}
	}
	e.attributes = append(e.attributes, Attr{Name: name, Value: value})
}

func (e *Element) removeAttribute(name string) {
	for i, a := range e.attributes {
		if a.Name == name {
			e.attributes = append(e.attributes[:i], e.attributes[i+1:]...)
			return
		}
	}
}

// Style returns the element's inline style declaration.
func (e *Element) Style() *CSSStyleDeclaration {
	if e.style == nil {
		e.style = newCSSStyleDeclaration(e)
	}
	return e.style
}

// Parent returns the parent element, or nil for a root or detached element.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	return e.children
}

// AppendChild appends child, first detaching it from its current parent.
func (e *Element) AppendChild(child *Element) error {
	if child == nil {
		return ErrHierarchyRequest("cannot append a nil element")
	}
	for p := e; p != nil; p = p.parent {
		if p == child {
			return ErrHierarchyRequest("the new child is an ancestor of the parent")
		}
	}
	if child.parent != nil {
		_ = child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return nil
}

// RemoveChild detaches child from e.
func (e *Element) RemoveChild(child *Element) error {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return nil
		}
	}
	return ErrNotFound("the node to be removed is not a child of this node")
}

// TextContent returns the element's own text followed by that of its
// descendants in tree order.
func (e *Element) TextContent() string {
	var sb strings.Builder
	e.collectText(&sb)
	return sb.String()
}

func (e *Element) collectText(sb *strings.Builder) {
	sb.WriteString(e.text.String())
	for _, c := range e.children {
		c.collectText(sb)
	}
}

// SetTextContent replaces the element's children with text.
func (e *Element) SetTextContent(text string) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.text.Reset()
	e.text.WriteString(text)
}

// SetScrollSize fixes the element's scrollable size, overriding its inline
// width and height.
func (e *Element) SetScrollSize(width, height float64) {
	e.scrollWidth, e.scrollHeight = width, height
	e.hasScrollSize = true
}

// ScrollWidth returns the element's scrollable width: the size set with
// SetScrollSize, else its inline pixel width, else 0.
func (e *Element) ScrollWidth() float64 {
	if e.hasScrollSize {
		return e.scrollWidth
	}
	px, _ := e.Style().Pixels("width")
	return px
}

// ScrollHeight is the vertical counterpart of ScrollWidth.
func (e *Element) ScrollHeight() float64 {
	if e.hasScrollSize {
		return e.scrollHeight
	}
	px, _ := e.Style().Pixels("height")
	return px
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for p := other; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// Matches reports whether the element matches the selector list.
func (e *Element) Matches(selector string) (bool, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return false, err
	}
	return list.matches(e), nil
}

// Closest returns the nearest inclusive ancestor matching selector.
func (e *Element) Closest(selector string) (*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	for p := e; p != nil; p = p.parent {
		if list.matches(p) {
			return p, nil
		}
	}
	return nil, nil
}

// QuerySelector returns the first descendant matching selector, or nil.
func (e *Element) QuerySelector(selector string) (*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var found *Element
	e.walkDescendants(func(el *Element) bool {
		if list.matches(el) {
			found = el
			return false
		}
		return true
	})
	return found, nil
}

// QuerySelectorAll returns every descendant matching selector in tree order.
func (e *Element) QuerySelectorAll(selector string) ([]*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var found []*Element
	e.walkDescendants(func(el *Element) bool {
		if list.matches(el) {
			found = append(found, el)
		}
		return true
	})
	return found, nil
}

// walkDescendants visits descendants in tree order until fn returns false.
func (e *Element) walkDescendants(fn func(*Element) bool) bool {
	for _, c := range e.children {
		if !fn(c) || !c.walkDescendants(fn) {
			return false
		}
	}
	return true
}
