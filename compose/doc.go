// Package compose extracts environment variable documentation from Docker
// Compose files.
//
// Variables are documented with "# --" comments placed directly above their
// declaration:
//
//	services:
//	  web:
//	    environment:
//	      # -- Port number for the web server
//	      PORT: ${PORT:-8080}
//
// Consecutive "# --" lines concatenate into one description. Inside
// list-style environment blocks the marker may follow the sequence dash
// ("- # -- description"). A comment block placed directly above a service
// key becomes that service's description.
//
// The parser walks the YAML AST (via [github.com/goccy/go-yaml]) and the
// raw file text together: the AST supplies structure, declaration order,
// and the exact source line of every declaration, while a single linear
// pass over the raw lines detects comment blocks and attaches each block
// to the declaration that follows it. Anchors and merge keys (<<:) are
// resolved during the walk, so a comment above a shared anchor documents
// every service that merges it.
//
// Both declaration syntaxes are recognized:
//
//   - mapping form: KEY: value, where the mapping key names the variable
//     and the value supplies its default;
//   - list form: - KEY=value, split on the first "=".
//
// Values using Compose substitution syntax (${NAME}, ${NAME-default},
// ${NAME:-default}, $NAME) contribute the inline default, or none for a
// bare reference. Substitutions inside other service properties (image,
// ports, and so on) are extracted as well, named by the referenced
// variable.
//
// Variables that never receive a description are excluded from the result
// and reported as warnings, as are comment blocks with no declaration to
// attach to. Warnings carry 1-based line numbers.
package compose
