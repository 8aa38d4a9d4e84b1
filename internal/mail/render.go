// Package mail renders and delivers transactional notification emails.
package mail

import (
	"regexp"
	"strings"
)

// Variables maps template placeholder names to their values.
type Variables map[string]string

var (
	// {{#if cond}}...{{else}}...{{/if}}, a single level only. Nesting is unsupported.
	conditionalPattern = regexp.MustCompile(`(?s)\{\{#if\s+([^}]+)\}\}(.*?)(?:\{\{else\}\}(.*?))?\{\{/if\}\}`)
	placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)
)

// truthy reports whether a template variable enables an if-branch.
func truthy(v string) bool {
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

// Render substitutes {{name}} placeholders and evaluates single-level
// {{#if}}/{{else}}/{{/if}} blocks. Unresolved placeholders render as empty
// strings, never as literal tokens. Rendering is deterministic: the same
// template and variables always produce identical output.
func Render(template string, vars Variables) string {
	// Conditionals first so branch contents still get substitution below.
	out := conditionalPattern.ReplaceAllStringFunc(template, func(block string) string {
		m := conditionalPattern.FindStringSubmatch(block)
		cond, ifContent, elseContent := m[1], m[2], m[3]
		if truthy(vars[strings.TrimSpace(cond)]) {
			return strings.TrimSpace(ifContent)
		}
		return strings.TrimSpace(elseContent)
	})

	return placeholderPattern.ReplaceAllStringFunc(out, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]
		return vars[name]
	})
}
