package compose

// EnvVarDoc is one documented environment variable. Every EnvVarDoc in a
// parse result has a non-empty Description; undocumented variables are
// dropped during assembly and surface as warnings instead.
type EnvVarDoc struct {
	// DefaultValue is the variable's default, either from substitution
	// syntax (${NAME:-default}) or from a literal declaration value.
	// Nil means no default was declared.
	DefaultValue *string

	// Name is the variable name exactly as declared. Names are compared
	// by raw string equality; no normalization is applied.
	Name string

	// Description is the space-joined text of the "# --" comment block
	// above the declaration.
	Description string

	// ParentProperty is the service property the variable was declared
	// under (e.g. "environment", "labels"), or "other" when the
	// declaration sits directly on the service.
	ParentProperty string
}

// ServiceDoc holds the documented variables of one service, in declaration
// order.
type ServiceDoc struct {
	// Name is the service key under the top-level services mapping.
	Name string

	// Description is the text of a "# --" comment block placed directly
	// above the service key, if any.
	Description string

	// EnvVars preserves the order in which variables were declared.
	EnvVars []EnvVarDoc
}

// ServicesDoc is the parse result for one compose file.
//
// Services with zero documented variables are omitted unless the parser
// was created with [WithKeepEmptyServices]. A ServicesDoc with no services
// is a valid, empty result.
type ServicesDoc struct {
	// SourceFile is the display form of the input path, after any
	// [WithDisplayPath] rewriting.
	SourceFile string

	// Services in document order.
	Services []*ServiceDoc

	// Warnings accumulates non-fatal diagnostics (orphaned comments,
	// undocumented variables), each prefixed with a 1-based line number.
	Warnings []string
}
