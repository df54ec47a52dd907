package vault

import "strings"

// defaultNoteTemplate renders a page note body. Placeholders are
// substituted verbatim; unknown placeholders are left in place so a
// malformed template is visible in the output rather than silently
// eaten.
const defaultNoteTemplate = `# {{title}}

> {{excerpt}}

{{content}}

---
Source: {{url}}
`

// RenderTemplate substitutes {{name}} placeholders in tmpl from vars.
func RenderTemplate(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
