package engine

import "regexp"

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Resolution is the observable outcome of a substitution pass. Unresolved
// lists tokens that were left in the output verbatim because no variable
// matched them; callers can surface degraded output instead of guessing.
type Resolution struct {
	Text       string
	Unresolved []string
}

// Degraded reports whether the template referenced unknown identifiers.
func (r Resolution) Degraded() bool {
	return len(r.Unresolved) > 0
}

// Substitute replaces every {{identifier}} token with its variable value.
// Sequence values join with "/", empty scalars become "", and unknown
// identifiers pass through unchanged so a template authored for a different
// variable set stays visually obvious.
func Substitute(template string, vars Variables) string {
	return Resolve(template, vars).Text
}

// Resolve is Substitute plus the list of tokens that did not resolve.
func Resolve(template string, vars Variables) Resolution {
	var unresolved []string
	text := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		key := token[2 : len(token)-2]
		if value, ok := vars.lookupString(key); ok {
			return value
		}
		unresolved = append(unresolved, key)
		return token
	})
	return Resolution{Text: text, Unresolved: unresolved}
}
