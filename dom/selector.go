package dom

import (
	"fmt"
	"strings"
	"unicode"
)

// Supported selectors: type, universal, #id, .class, attribute selectors
// with the [attr], =, ~=, |=, ^=, $= and *= forms, the descendant and child
// combinators, and comma-separated groups.

type selectorList []complexSelector

type complexSelector struct {
	compounds []compoundSelector
	// combinators[i] joins compounds[i] and compounds[i+1]: ' ' or '>'.
	combinators []byte
}

type compoundSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrSelector
}

type attrSelector struct {
	name  string
	op    string
	value string
}

func (l selectorList) matches(e *Element) bool {
	for _, cs := range l {
		if cs.matchAt(e, len(cs.compounds)-1) {
			return true
		}
	}
	return false
}

// matchAt matches compounds[:i+1] right to left, with e as the subject of
// compounds[i].
func (cs complexSelector) matchAt(e *Element, i int) bool {
	if !cs.compounds[i].matches(e) {
		return false
	}
	if i == 0 {
		return true
	}
	if cs.combinators[i-1] == '>' {
		return e.parent != nil && cs.matchAt(e.parent, i-1)
	}
	for p := e.parent; p != nil; p = p.parent {
		if cs.matchAt(p, i-1) {
			return true
		}
	}
	return false
}

func (c compoundSelector) matches(e *Element) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, e.localName) {
		return false
	}
	if c.id != "" && e.ID() != c.id {
		return false
	}
	for _, class := range c.classes {
		if !e.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		if !a.matches(e) {
			return false
		}
	}
	return true
}

func (a attrSelector) matches(e *Element) bool {
	if !e.HasAttribute(a.name) {
		return false
	}
	attrValue := e.GetAttribute(a.name)

	switch a.op {
	case "":
		return true
	case "=":
		return attrValue == a.value
	case "~=":
		// Word match
		for _, word := range strings.Fields(attrValue) {
			if word == a.value {
				return true
			}
		}
		return false
	case "|=":
		// Hyphen-separated prefix match
		return attrValue == a.value || strings.HasPrefix(attrValue, a.value+"-")
	case "^=":
		return a.value != "" && strings.HasPrefix(attrValue, a.value)
	case "$=":
		return a.value != "" && strings.HasSuffix(attrValue, a.value)
	case "*=":
		return a.value != "" && strings.Contains(attrValue, a.value)
	}
	return false
}

func parseSelectorList(selector string) (selectorList, error) {
	var list selectorList
	for _, group := range splitSelectorGroups(selector) {
		p := &selectorParser{src: strings.TrimSpace(group)}
		cs, err := p.parseComplex()
		if err != nil {
			return nil, ErrSyntax(fmt.Sprintf("'%s' is not a valid selector: %v", selector, err))
		}
		list = append(list, cs)
	}
	return list, nil
}

// splitSelectorGroups splits on commas outside brackets and quotes.
func splitSelectorGroups(selector string) []string {
	var groups []string
	var quote rune
	depth, start := 0, 0
	for i, r := range selector {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[':
			depth++
		case r == ']':
			depth--
		case r == ',' && depth == 0:
			groups = append(groups, selector[start:i])
			start = i + 1
		}
	}
	return append(groups, selector[start:])
}

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *selectorParser) peek() byte {
	return p.src[p.pos]
}

func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for !p.done() && isSelectorSpace(p.peek()) {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) parseComplex() (complexSelector, error) {
	var cs complexSelector
	if p.src == "" {
		return cs, fmt.Errorf("empty selector")
	}
	for {
		compound, err := p.parseCompound()
		if err != nil {
			return cs, err
		}
		cs.compounds = append(cs.compounds, compound)

		hadSpace := p.skipSpace()
		if p.done() {
			return cs, nil
		}
		combinator := byte(' ')
		if p.peek() == '>' {
			combinator = '>'
			p.pos++
			p.skipSpace()
		} else if !hadSpace {
			return cs, fmt.Errorf("unexpected %q at offset %d", p.peek(), p.pos)
		}
		if p.done() {
			return cs, fmt.Errorf("dangling combinator")
		}
		cs.combinators = append(cs.combinators, combinator)
	}
}

func (p *selectorParser) parseCompound() (compoundSelector, error) {
	var c compoundSelector
	start := p.pos
	if !p.done() && p.peek() == '*' {
		c.tag = "*"
		p.pos++
	} else if !p.done() && isIdentByte(p.peek()) {
		c.tag = p.ident()
	}

	for !p.done() && !isSelectorSpace(p.peek()) && p.peek() != '>' {
		switch p.peek() {
		case '#':
			p.pos++
			if c.id = p.ident(); c.id == "" {
				return c, fmt.Errorf("expected id after '#'")
			}
		case '.':
			p.pos++
			class := p.ident()
			if class == "" {
				return c, fmt.Errorf("expected class name after '.'")
			}
			c.classes = append(c.classes, class)
		case '[':
			p.pos++
			a, err := p.parseAttr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
		default:
			return c, fmt.Errorf("unexpected %q at offset %d", p.peek(), p.pos)
		}
	}
	if p.pos == start {
		return c, fmt.Errorf("expected selector at offset %d", p.pos)
	}
	return c, nil
}

// parseAttr parses the remainder of an attribute selector after '['.
func (p *selectorParser) parseAttr() (attrSelector, error) {
	var a attrSelector
	p.skipSpace()
	a.name = strings.ToLower(p.ident())
	if a.name == "" {
		return a, fmt.Errorf("expected attribute name")
	}
	p.skipSpace()
	if p.done() {
		return a, fmt.Errorf("unterminated attribute selector")
	}
	if p.peek() == ']' {
		p.pos++
		return a, nil
	}

	switch {
	case p.peek() == '=':
		a.op = "="
		p.pos++
	case strings.IndexByte("~|^$*", p.peek()) >= 0 && p.pos+1 < len(p.src) && p.src[p.pos+1] == '=':
		a.op = p.src[p.pos : p.pos+2]
		p.pos += 2
	default:
		return a, fmt.Errorf("unexpected %q in attribute selector", p.peek())
	}

	p.skipSpace()
	if p.done() {
		return a, fmt.Errorf("unterminated attribute selector")
	}
	if q := p.peek(); q == '"' || q == '\'' {
		end := strings.IndexByte(p.src[p.pos+1:], q)
		if end == -1 {
			return a, fmt.Errorf("unterminated string")
		}
		a.value = p.src[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
	} else {
		a.value = p.ident()
	}

	p.skipSpace()
	if p.done() || p.peek() != ']' {
		return a, fmt.Errorf("unterminated attribute selector")
	}
	p.pos++
	return a, nil
}

func (p *selectorParser) ident() string {
	start := p.pos
	for !p.done() && isIdentByte(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' || b >= 0x80 || unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}

func isSelectorSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
