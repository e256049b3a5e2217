package compose

import (
	"regexp"
	"strings"
)

var (
	// substitutionRegex matches Compose substitution syntax: braced
	// references with optional defaults (${NAME}, ${NAME-default},
	// ${NAME:-default}) and bare references ($NAME).
	substitutionRegex = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

	// inlineDefaultRegex captures the default of a ${NAME-default} or
	// ${NAME:-default} expression. The name is everything before the
	// first "-", with a trailing ":" folded into the separator.
	inlineDefaultRegex = regexp.MustCompile(`\$\{[^}]+?:?-([^}]*)\}`)

	// bareReferenceRegex matches values that are exactly one substitution
	// reference with no default.
	bareReferenceRegex = regexp.MustCompile(`^\$\{[^}]+\}$|^\$[A-Za-z_][A-Za-z0-9_]*$`)
)

// Variable is one substitution reference extracted from a scalar value.
type Variable struct {
	// Default is the inline default, verbatim. ${NAME:-} yields an empty
	// but present default; ${NAME} and $NAME yield nil.
	Default *string

	// Name is the referenced variable name.
	Name string
}

// ExtractVariables returns the substitution references found in s, one per
// non-overlapping pattern, left to right.
func ExtractVariables(s string) []Variable {
	var vars []Variable

	for _, m := range substitutionRegex.FindAllStringSubmatch(s, -1) {
		if m[1] != "" {
			vars = append(vars, parseBraced(m[1]))

			continue
		}

		vars = append(vars, Variable{Name: m[2]})
	}

	return vars
}

// parseBraced splits the inside of a ${...} expression into name and
// optional default. The default is everything after the first "-", taken
// verbatim including the empty string.
func parseBraced(inner string) Variable {
	name, def, ok := strings.Cut(inner, "-")
	if !ok {
		return Variable{Name: strings.TrimSpace(inner)}
	}

	name = strings.TrimSuffix(strings.TrimSpace(name), ":")

	return Variable{Name: name, Default: &def}
}

// DefaultFromValue derives the documentation default for a declaration
// value, using the same substitution rules as [ExtractVariables]:
//
//   - ${NAME-default} / ${NAME:-default} -> that default, verbatim;
//   - ${NAME} / $NAME -> no default;
//   - anything else -> the literal value itself.
//
// This is the single source of truth for default semantics across mapping
// values and KEY=VALUE list entries.
func DefaultFromValue(v string) *string {
	if m := inlineDefaultRegex.FindStringSubmatch(v); m != nil {
		def := m[1]

		return &def
	}

	if bareReferenceRegex.MatchString(v) {
		return nil
	}

	return &v
}
