// Package contract fills placeholder-based contract templates. Templates are
// HTML fragments containing {{KEY}} placeholders; rendering substitutes bound
// keys and leaves unbound placeholders untouched so a partially filled
// document still shows where values are missing.
package contract

import (
	"html"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Render substitutes every bound {{KEY}} in template with its value. Values
// are HTML-escaped because the output is an HTML document context; callers
// that need markup in values use RenderRaw.
func Render(template string, bindings map[string]string) string {
	return render(template, bindings, true)
}

// RenderRaw substitutes without escaping. Only for values the caller already
// controls; never for user-supplied input.
func RenderRaw(template string, bindings map[string]string) string {
	return render(template, bindings, false)
}

func render(template string, bindings map[string]string, escape bool) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := bindings[key]
		if !ok {
			return match
		}
		if escape {
			return html.EscapeString(value)
		}
		return value
	})
}

// Placeholders returns the distinct placeholder keys in template, in first
// appearance order.
func Placeholders(template string) []string {
	seen := map[string]struct{}{}
	keys := []string{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		keys = append(keys, m[1])
	}
	return keys
}
