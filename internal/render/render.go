// Package render substitutes {{key}} placeholders in stored email
// templates.
package render

import "strings"

// Render replaces every occurrence of {{key}} in content with the
// matching value. Keys are matched case-sensitively; placeholders with
// no matching key are left verbatim.
//
// No escaping is performed: callers own the trust boundary and must
// ensure values are safe for the HTML context, including values that
// could themselves contain placeholder syntax.
func Render(content string, data map[string]string) string {
	if len(data) == 0 {
		return content
	}

	for key, value := range data {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content
}
