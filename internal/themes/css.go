// SPDX-License-Identifier: MIT
package themes

import (
	"strconv"
	"strings"
)

// GenerateCSS renders the copy-paste stylesheet for a theme: the light map
// under :root, the dark map under .dark, wrapped in @layer base.
func GenerateCSS(light, dark TokenMap, radius float64) string {
	var b strings.Builder
	b.WriteString("@layer base {\n  :root {\n")
	writeDeclarations(&b, light, RadiusValue(radius))
	b.WriteString("  }\n  .dark {\n")
	writeDeclarations(&b, dark, "")
	b.WriteString("  }\n}\n")
	return b.String()
}

// RadiusValue formats a radius in rem, e.g. "0.625rem".
func RadiusValue(rem float64) string {
	return strconv.FormatFloat(rem, 'f', -1, 64) + "rem"
}

func writeDeclarations(b *strings.Builder, m TokenMap, radius string) {
	for _, t := range m.Sorted() {
		writeDeclaration(b, t.Name, t.Value)
		if radius != "" && t.Name == Ring.Var() {
			writeDeclaration(b, "--radius", radius)
			radius = ""
		}
	}
	if radius != "" {
		writeDeclaration(b, "--radius", radius)
	}
}

func writeDeclaration(b *strings.Builder, name, value string) {
	b.WriteString("    ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString(";\n")
}

// ElementCSS styles plain HTML elements from the theme tokens. The preview
// page links it after the generated variables.
const ElementCSS = `/* Base element styles */
body {
  background-color: hsl(var(--background));
  color: hsl(var(--foreground));
  transition: background-color 0.2s, color 0.2s;
}

a {
  color: hsl(var(--primary));
  text-decoration: none;
}

a:hover {
  text-decoration: underline;
}

/* Button styles */
button, .btn {
  background-color: hsl(var(--primary));
  color: hsl(var(--primary-foreground));
  border: none;
  padding: 8px 16px;
  border-radius: var(--radius);
  cursor: pointer;
  transition: opacity 0.2s;
}

button.secondary, .btn-secondary {
  background-color: hsl(var(--secondary));
  color: hsl(var(--secondary-foreground));
}

button.destructive, .btn-destructive {
  background-color: hsl(var(--destructive));
  color: hsl(var(--destructive-foreground));
}

button:hover, .btn:hover {
  opacity: 0.9;
}

/* Card/surface styles */
.card {
  background-color: hsl(var(--card));
  color: hsl(var(--card-foreground));
  border: 1px solid hsl(var(--border));
  border-radius: calc(var(--radius) + 4px);
  padding: 16px;
}

/* Input styles */
input, textarea, select {
  border: 1px solid hsl(var(--input));
  background-color: hsl(var(--background));
  color: hsl(var(--foreground));
  padding: 8px;
  border-radius: var(--radius);
}

input:focus, textarea:focus, select:focus {
  outline: none;
  box-shadow: 0 0 0 2px hsl(var(--ring));
}

/* Muted text */
.text-muted, .muted {
  color: hsl(var(--muted-foreground));
}

.swatch {
  display: inline-block;
  width: 48px;
  height: 48px;
  border-radius: var(--radius);
  border: 1px solid hsl(var(--border));
}

.gradient {
  background-image: linear-gradient(90deg, hsl(var(--gradient-one)), hsl(var(--gradient-two)));
  height: 12px;
  border-radius: var(--radius);
}
`
