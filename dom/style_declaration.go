package dom

import (
	"strconv"
	"strings"
)

// CSSStyleDeclaration represents an element's inline style. Writes are
// mirrored to the element's style attribute.
type CSSStyleDeclaration struct {
	element *Element

	// property name -> value
	declarations map[string]string

	// Order in which properties were set (for cssText serialization)
	propertyOrder []string
}

func newCSSStyleDeclaration(element *Element) *CSSStyleDeclaration {
	sd := &CSSStyleDeclaration{
		element:      element,
		declarations: make(map[string]string),
	}
	if element != nil && element.HasAttribute("style") {
		sd.parse(element.GetAttribute("style"))
	}
	return sd
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSStyleDeclaration) CSSText() string {
	parts := make([]string, 0, len(sd.propertyOrder))
	for _, prop := range sd.propertyOrder {
		parts = append(parts, prop+": "+sd.declarations[prop])
	}
	return strings.Join(parts, "; ")
}

// SetCSSText replaces every property with the ones in cssText.
func (sd *CSSStyleDeclaration) SetCSSText(cssText string) {
	sd.reset()
	sd.parse(cssText)
	sd.syncToAttribute()
}

// Length returns the number of properties set.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.propertyOrder)
}

// GetPropertyValue returns the value of a CSS property.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	return sd.declarations[normalizeCSSPropertyName(property)]
}

// SetProperty sets a CSS property. An empty value removes it.
func (sd *CSSStyleDeclaration) SetProperty(property, value string) {
	property = normalizeCSSPropertyName(property)
	if property == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		sd.RemoveProperty(property)
		return
	}
	if _, exists := sd.declarations[property]; !exists {
		sd.propertyOrder = append(sd.propertyOrder, property)
	}
	sd.declarations[property] = value
	sd.syncToAttribute()
}

// RemoveProperty removes a CSS property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	property = normalizeCSSPropertyName(property)
	old, ok := sd.declarations[property]
	if !ok {
		return ""
	}
	delete(sd.declarations, property)
	for i, p := range sd.propertyOrder {
		if p == property {
			sd.propertyOrder = append(sd.propertyOrder[:i], sd.propertyOrder[i+1:]...)
			break
		}
	}
	sd.syncToAttribute()
	return old
}

// Pixels parses a property holding a pixel length such as "250px" or a
// bare number. ok is false when the property is unset or not a pixel
// length.
func (sd *CSSStyleDeclaration) Pixels(property string) (px float64, ok bool) {
	return parsePixels(sd.GetPropertyValue(property))
}

func (sd *CSSStyleDeclaration) reset() {
	sd.declarations = make(map[string]string)
	sd.propertyOrder = nil
}

// parse reads "prop: value; prop: value" into the declarations.
// Priorities are dropped; inline styles here never compete with a cascade.
func (sd *CSSStyleDeclaration) parse(styleAttr string) {
	for _, part := range strings.Split(styleAttr, ";") {
		colon := strings.Index(part, ":")
		if colon == -1 {
			continue
		}
		property := normalizeCSSPropertyName(strings.TrimSpace(part[:colon]))
		value := strings.TrimSpace(part[colon+1:])
		if i := strings.Index(strings.ToLower(value), "!important"); i >= 0 {
			value = strings.TrimSpace(value[:i])
		}
		if property == "" || value == "" {
			continue
		}
		if _, exists := sd.declarations[property]; !exists {
			sd.propertyOrder = append(sd.propertyOrder, property)
		}
		sd.declarations[property] = value
	}
}

// syncToAttribute writes the declarations back to the style attribute
// without re-parsing them.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	if sd.element == nil {
		return
	}
	if cssText := sd.CSSText(); cssText == "" {
		sd.element.removeAttribute("style")
	} else {
		sd.element.setAttribute("style", cssText)
	}
}

// normalizeCSSPropertyName converts camelCase to kebab-case and lowercases.
// Examples: "userSelect" -> "user-select", "WebkitTransform" -> "-webkit-transform"
func normalizeCSSPropertyName(name string) string {
	if name == "" || strings.Contains(name, "-") {
		return strings.ToLower(name)
	}

	var result strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			result.WriteByte('-')
			result.WriteByte(byte(r - 'A' + 'a'))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func parsePixels(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "px")
	if value == "" {
		return 0, false
	}
	px, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return px, true
}
