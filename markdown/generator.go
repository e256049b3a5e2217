// Package markdown renders compose parse results as Markdown, with one
// section per file, one subsection per service, and one table per service
// property grouping.
package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go.jacobcolvin.com/composedoc/compose"
)

// DefaultHeading is the document heading used unless overridden with
// [WithHeading].
const DefaultHeading = "# Environment Variables Documentation"

var titleCaser = cases.Title(language.English)

// Generator renders [compose.ServicesDoc] values into a single Markdown
// document.
//
// Create instances with [NewGenerator].
type Generator struct {
	heading string
}

// Option configures a [Generator].
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{heading: DefaultHeading}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithHeading overrides the document heading.
func WithHeading(heading string) Option {
	return func(g *Generator) {
		g.heading = heading
	}
}

// Generate renders docs as Markdown. Files with no services are skipped;
// an input with no documented variables at all renders the heading and a
// placeholder sentence.
func (g *Generator) Generate(docs []*compose.ServicesDoc) string {
	if !hasServices(docs) {
		return g.heading + "\n\nNo documented environment variables found.\n"
	}

	out := []string{g.heading + "\n"}

	for _, doc := range docs {
		if len(doc.Services) == 0 {
			continue
		}

		out = append(out, fmt.Sprintf("## File: `%s`\n", doc.SourceFile))

		for i, svc := range doc.Services {
			out = append(out, g.renderService(svc)...)

			if i < len(doc.Services)-1 {
				out = append(out, "")
			}
		}

		out = append(out, "")
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

// renderService renders one service section: heading, optional service
// description, and per-property variable tables.
func (g *Generator) renderService(svc *compose.ServiceDoc) []string {
	out := []string{fmt.Sprintf("### Service: %s\n", svc.Name)}

	if svc.Description != "" {
		out = append(out, svc.Description+"\n")
	}

	if len(svc.EnvVars) == 0 {
		out = append(out, "No documented environment variables.")

		return out
	}

	groups, order := groupByProperty(svc.EnvVars)

	for i, prop := range order {
		out = append(out, fmt.Sprintf("#### %s\n", titleCaser.String(prop)))
		out = append(out,
			"| Variable | Description | Default Value |",
			"|----------|-------------|---------------|",
		)

		for _, envVar := range groups[prop] {
			out = append(out, tableRow(envVar))
		}

		if i < len(order)-1 {
			out = append(out, "")
		}
	}

	return out
}

// groupByProperty buckets variables by parent property, preserving
// first-appearance order of both groups and members.
func groupByProperty(envVars []compose.EnvVarDoc) (map[string][]compose.EnvVarDoc, []string) {
	groups := make(map[string][]compose.EnvVarDoc)

	var order []string

	for _, envVar := range envVars {
		prop := envVar.ParentProperty
		if prop == "" {
			prop = "other"
		}

		if _, ok := groups[prop]; !ok {
			order = append(order, prop)
		}

		groups[prop] = append(groups[prop], envVar)
	}

	return groups, order
}

func tableRow(envVar compose.EnvVarDoc) string {
	defaultVal := "-"
	if envVar.DefaultValue != nil && *envVar.DefaultValue != "" {
		defaultVal = fmt.Sprintf("`%s`", escapePipes(*envVar.DefaultValue))
	}

	return fmt.Sprintf("| `%s` | %s | %s |",
		escapePipes(envVar.Name),
		escapePipes(envVar.Description),
		defaultVal,
	)
}

// escapePipes escapes table cell separators so values containing "|" do
// not break row layout.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func hasServices(docs []*compose.ServicesDoc) bool {
	for _, doc := range docs {
		if len(doc.Services) > 0 {
			return true
		}
	}

	return false
}
