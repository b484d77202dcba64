// SPDX-License-Identifier: MIT

// Package document models the live page a theme is projected onto: the
// root element's inline style and class list, and the style elements in
// the head.
package document

import (
	"html"
	"sort"
	"strings"
	"sync"
)

// Property is one inline custom property on the root element.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StyleElement is a <style> element in the head.
type StyleElement struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Snapshot is a point-in-time copy of a Document.
type Snapshot struct {
	InlineStyle string         `json:"inlineStyle"`
	Properties  []Property     `json:"properties"`
	Classes     []string       `json:"classes"`
	Styles      []StyleElement `json:"styles"`
}

// Document is safe for concurrent use.
type Document struct {
	mu      sync.RWMutex
	props   []Property
	classes map[string]bool
	styles  []StyleElement
}

// New returns an empty document.
func New() *Document {
	return &Document{classes: make(map[string]bool)}
}

// SetProperty sets a property on the root inline style. An existing
// property keeps its position.
func (d *Document) SetProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.props {
		if d.props[i].Name == name {
			d.props[i].Value = value
			return
		}
	}
	d.props = append(d.props, Property{Name: name, Value: value})
}

// Property returns the inline value of name.
func (d *Document) Property(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// ClearInlineStyle removes every inline property at once.
func (d *Document) ClearInlineStyle() {
	d.mu.Lock()
	d.props = nil
	d.mu.Unlock()
}

// InlineStyle returns the root style attribute text.
func (d *Document) InlineStyle() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return inlineStyle(d.props)
}

func inlineStyle(props []Property) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, p.Name+": "+p.Value+";")
	}
	return strings.Join(parts, " ")
}

// AddClass adds a class to the root element.
func (d *Document) AddClass(name string) {
	d.mu.Lock()
	d.classes[name] = true
	d.mu.Unlock()
}

// RemoveClass removes a class from the root element.
func (d *Document) RemoveClass(name string) {
	d.mu.Lock()
	delete(d.classes, name)
	d.mu.Unlock()
}

// HasClass reports whether the root element carries name.
func (d *Document) HasClass(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.classes[name]
}

// ToggleClass flips name and reports whether it is now present.
func (d *Document) ToggleClass(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.classes[name] {
		delete(d.classes, name)
		return false
	}
	d.classes[name] = true
	return true
}

// Classes returns the root classes sorted by name.
func (d *Document) Classes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sortedClasses()
}

func (d *Document) sortedClasses() []string {
	out := make([]string, 0, len(d.classes))
	for c := range d.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// StyleElement returns the text of the first style element with id.
func (d *Document) StyleElement(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, s := range d.styles {
		if s.ID == id {
			return s.Text, true
		}
	}
	return "", false
}

// UpsertStyleElement replaces the text of the element with id, creating it
// on first use.
func (d *Document) UpsertStyleElement(id, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.styles {
		if d.styles[i].ID == id {
			d.styles[i].Text = text
			return
		}
	}
	d.styles = append(d.styles, StyleElement{ID: id, Text: text})
}

// RemoveStyleElement removes every style element with id.
func (d *Document) RemoveStyleElement(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.styles[:0]
	for _, s := range d.styles {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	d.styles = kept
}

// StyleElementCount returns how many style elements carry id.
func (d *Document) StyleElementCount(id string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for _, s := range d.styles {
		if s.ID == id {
			n++
		}
	}
	return n
}

// Snapshot copies the current document.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{
		InlineStyle: inlineStyle(d.props),
		Properties:  append([]Property(nil), d.props...),
		Classes:     d.sortedClasses(),
		Styles:      append([]StyleElement(nil), d.styles...),
	}
}

// HTML serializes the document with body as the body content. body is
// written as is.
func (d *Document) HTML(body string) string {
	s := d.Snapshot()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html")
	if len(s.Classes) > 0 {
		b.WriteString(` class="` + html.EscapeString(strings.Join(s.Classes, " ")) + `"`)
	}
	if s.InlineStyle != "" {
		b.WriteString(` style="` + html.EscapeString(s.InlineStyle) + `"`)
	}
	b.WriteString(">\n<head>\n")
	for _, el := range s.Styles {
		b.WriteString(`<style id="` + html.EscapeString(el.ID) + `">`)
		// style content is raw text; only a closing tag could escape it
		b.WriteString(strings.ReplaceAll(el.Text, "</", `<\/`))
		b.WriteString("</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
