package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/composedoc/compose"
	"go.jacobcolvin.com/composedoc/markdown"
	"go.jacobcolvin.com/composedoc/stringtest"
)

func strptr(s string) *string {
	return &s
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    []*compose.ServicesDoc
		opts     []markdown.Option
		expected string
	}{
		"no input": {
			input: nil,
			expected: stringtest.JoinLF(
				"# Environment Variables Documentation",
				"",
				"No documented environment variables found.",
				"",
			),
		},
		"files without services": {
			input: []*compose.ServicesDoc{
				{SourceFile: "a/docker-compose.yml"},
				{SourceFile: "b/compose.yaml"},
			},
			expected: stringtest.JoinLF(
				"# Environment Variables Documentation",
				"",
				"No documented environment variables found.",
				"",
			),
		},
		"custom heading": {
			input: nil,
			opts:  []markdown.Option{markdown.WithHeading("# Service Config")},
			expected: stringtest.JoinLF(
				"# Service Config",
				"",
				"No documented environment variables found.",
				"",
			),
		},
		"service with grouped tables": {
			input: []*compose.ServicesDoc{
				{
					SourceFile: "docker-compose.yaml",
					Services: []*compose.ServiceDoc{
						{
							Name:        "web",
							Description: "Frontend",
							EnvVars: []compose.EnvVarDoc{
								{
									Name:           "PORT",
									Description:    "Listen port",
									DefaultValue:   strptr("8080"),
									ParentProperty: "environment",
								},
								{
									Name:           "HOST",
									Description:    "Host name",
									ParentProperty: "environment",
								},
								{
									Name:           "traefik.host",
									Description:    "Router host",
									ParentProperty: "labels",
								},
							},
						},
					},
				},
			},
			expected: stringtest.JoinLF(
				"# Environment Variables Documentation",
				"",
				"## File: `docker-compose.yaml`",
				"",
				"### Service: web",
				"",
				"Frontend",
				"",
				"#### Environment",
				"",
				"| Variable | Description | Default Value |",
				"|----------|-------------|---------------|",
				"| `PORT` | Listen port | `8080` |",
				"| `HOST` | Host name | - |",
				"",
				"#### Labels",
				"",
				"| Variable | Description | Default Value |",
				"|----------|-------------|---------------|",
				"| `traefik.host` | Router host | - |",
				"",
			),
		},
		"multiple files and an empty service": {
			input: []*compose.ServicesDoc{
				{
					SourceFile: "a/docker-compose.yml",
					Services: []*compose.ServiceDoc{
						{Name: "db"},
						{
							Name: "web",
							EnvVars: []compose.EnvVarDoc{
								{
									Name:           "PORT",
									Description:    "Listen port",
									DefaultValue:   strptr("8080"),
									ParentProperty: "environment",
								},
							},
						},
					},
				},
				{SourceFile: "b/compose.yaml"},
				{
					SourceFile: "c/compose.yaml",
					Services: []*compose.ServiceDoc{
						{
							Name: "api",
							EnvVars: []compose.EnvVarDoc{
								{
									Name:           "KEY",
									Description:    "Api key",
									ParentProperty: "environment",
								},
							},
						},
					},
				},
			},
			expected: stringtest.JoinLF(
				"# Environment Variables Documentation",
				"",
				"## File: `a/docker-compose.yml`",
				"",
				"### Service: db",
				"",
				"No documented environment variables.",
				"",
				"### Service: web",
				"",
				"#### Environment",
				"",
				"| Variable | Description | Default Value |",
				"|----------|-------------|---------------|",
				"| `PORT` | Listen port | `8080` |",
				"",
				"## File: `c/compose.yaml`",
				"",
				"### Service: api",
				"",
				"#### Environment",
				"",
				"| Variable | Description | Default Value |",
				"|----------|-------------|---------------|",
				"| `KEY` | Api key | - |",
				"",
			),
		},
		"pipes escaped in cells": {
			input: []*compose.ServicesDoc{
				{
					SourceFile: "docker-compose.yaml",
					Services: []*compose.ServiceDoc{
						{
							Name: "web",
							EnvVars: []compose.EnvVarDoc{
								{
									Name:           "OPTS",
									Description:    "either a | or b",
									DefaultValue:   strptr("x|y"),
									ParentProperty: "environment",
								},
							},
						},
					},
				},
			},
			expected: stringtest.JoinLF(
				"# Environment Variables Documentation",
				"",
				"## File: `docker-compose.yaml`",
				"",
				"### Service: web",
				"",
				"#### Environment",
				"",
				"| Variable | Description | Default Value |",
				"|----------|-------------|---------------|",
				`| `+"`OPTS`"+` | either a \| or b | `+"`x\\|y`"+` |`,
				"",
			),
		},
		"missing parent property falls back to other": {
			input: []*compose.ServicesDoc{
				{
					SourceFile: "docker-compose.yaml",
					Services: []*compose.ServiceDoc{
						{
							Name: "web",
							EnvVars: []compose.EnvVarDoc{
								{
									Name:        "TOKEN",
									Description: "Auth token",
								},
							},
						},
					},
				},
			},
			expected: stringtest.JoinLF(
				"# Environment Variables Documentation",
				"",
				"## File: `docker-compose.yaml`",
				"",
				"### Service: web",
				"",
				"#### Other",
				"",
				"| Variable | Description | Default Value |",
				"|----------|-------------|---------------|",
				"| `TOKEN` | Auth token | - |",
				"",
			),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := markdown.NewGenerator(tc.opts...)

			assert.Equal(t, tc.expected, g.Generate(tc.input))
		})
	}
}
