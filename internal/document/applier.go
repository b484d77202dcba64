// SPDX-License-Identifier: MIT
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"

	"github.com/thatcatcamp/tint/internal/themes"
)

const (
	// DarkStyleID is the id of the injected .dark stylesheet.
	DarkStyleID = "theme-dark-colors"
	// DarkClass marks the root element in dark mode.
	DarkClass = "dark"
	// RadiusProperty carries the border radius in rem.
	RadiusProperty = "--radius"
)

// ErrNoDarkRule is returned by ReadDarkRule when nothing has been injected.
var ErrNoDarkRule = errors.New("dark stylesheet not present")

// Applier projects token maps onto a Document. It holds no state of its own.
type Applier struct {
	doc *Document
}

// NewApplier returns an applier writing to doc.
func NewApplier(doc *Document) *Applier {
	return &Applier{doc: doc}
}

// Document returns the document the applier writes to.
func (a *Applier) Document() *Document {
	return a.doc
}

// ApplyActive writes every token of colors to the root inline style.
func (a *Applier) ApplyActive(colors themes.TokenMap) {
	for _, t := range colors.Sorted() {
		a.doc.SetProperty(t.Name, t.Value)
	}
}

// ApplyDark writes the dark map as a .dark rule into the dark style
// element.
func (a *Applier) ApplyDark(dark themes.TokenMap) {
	a.doc.UpsertStyleElement(DarkStyleID, DarkRule(dark))
}

// DarkRule renders the text of the injected dark stylesheet.
func DarkRule(dark themes.TokenMap) string {
	decls := make([]string, 0, len(dark))
	for _, t := range dark.Sorted() {
		decls = append(decls, t.Name+": "+t.Value+";")
	}
	return ".dark {\n  " + strings.Join(decls, " ") + "\n}"
}

// ApplyRadius sets the radius property.
func (a *Applier) ApplyRadius(rem float64) {
	a.doc.SetProperty(RadiusProperty, themes.RadiusValue(rem))
}

// ApplyTheme projects a full theme: radius, the map of the active mode, and
// the dark stylesheet.
func (a *Applier) ApplyTheme(light, dark themes.TokenMap, radius float64, isDark bool) {
	a.ApplyRadius(radius)
	if isDark {
		a.ApplyActive(dark)
	} else {
		a.ApplyActive(light)
	}
	a.ApplyDark(dark)
}

// SetDarkMode adds or removes the dark class on the root element.
func (a *Applier) SetDarkMode(isDark bool) {
	if isDark {
		a.doc.AddClass(DarkClass)
	} else {
		a.doc.RemoveClass(DarkClass)
	}
}

// Reset clears the inline style, drops the dark stylesheet and re-applies
// only the radius.
func (a *Applier) Reset(defaultRadius float64) {
	a.doc.ClearInlineStyle()
	a.doc.RemoveStyleElement(DarkStyleID)
	a.ApplyRadius(defaultRadius)
}

// ReadDarkRule parses the injected dark stylesheet back into a token map.
func (a *Applier) ReadDarkRule() (themes.TokenMap, error) {
	text, ok := a.doc.StyleElement(DarkStyleID)
	if !ok {
		return nil, ErrNoDarkRule
	}
	return ParseRule(text, ".dark")
}

// ParseRule reads the declarations of a single CSS rule whose selector must
// equal selector.
func ParseRule(text, selector string) (themes.TokenMap, error) {
	s := scanner.New(text)

	var sel strings.Builder
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return nil, fmt.Errorf("rule %q has no block", selector)
		case scanner.TokenError:
			return nil, fmt.Errorf("parse rule at %d:%d: %s", tok.Line, tok.Column, tok.Value)
		case scanner.TokenS, scanner.TokenComment:
			continue
		}
		if tok.Type == scanner.TokenChar && tok.Value == "{" {
			break
		}
		sel.WriteString(tok.Value)
	}
	if got := sel.String(); got != selector {
		return nil, fmt.Errorf("unexpected selector %q, want %q", got, selector)
	}

	out := themes.TokenMap{}
	var name, value strings.Builder
	inValue := false
	flush := func() {
		n := strings.TrimSpace(name.String())
		if n != "" {
			out[n] = strings.Join(strings.Fields(value.String()), " ")
		}
		name.Reset()
		value.Reset()
		inValue = false
	}

	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return nil, fmt.Errorf("rule %q is not closed", selector)
		case scanner.TokenError:
			return nil, fmt.Errorf("parse rule at %d:%d: %s", tok.Line, tok.Column, tok.Value)
		case scanner.TokenComment:
			continue
		case scanner.TokenS:
			if inValue {
				value.WriteByte(' ')
			}
			continue
		case scanner.TokenChar:
			switch {
			case tok.Value == ":" && !inValue:
				inValue = true
				continue
			case tok.Value == ";":
				flush()
				continue
			case tok.Value == "}":
				flush()
				return out, nil
			}
		}
		if inValue {
			value.WriteString(tok.Value)
		} else {
			name.WriteString(tok.Value)
		}
	}
}
