package compose

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for parser configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	Output            string
	KeepEmptyServices string
	PathRewrite       string
}

// Config holds CLI flag values for parser configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewParser] to create a [Parser].
type Config struct {
	Flags             Flags
	Output            string
	PathRewrites      []string
	KeepEmptyServices bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output:            "output",
		KeepEmptyServices: "keep-empty-services",
		PathRewrite:       "path-rewrite",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds parser flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.BoolVar(&c.KeepEmptyServices, c.Flags.KeepEmptyServices, false,
		"keep services with no documented variables in the output")
	flags.StringArrayVar(&c.PathRewrites, c.Flags.PathRewrite, nil,
		"rewrite a display path prefix, in from=to form (repeatable)")
}

// RegisterCompletions registers shell completions for parser flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.PathRewrite, noFileComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.PathRewrite, err)
	}

	return nil
}

// NewParser creates a [Parser] using this [Config].
func (c *Config) NewParser() (*Parser, error) {
	var opts []Option

	if c.KeepEmptyServices {
		opts = append(opts, WithKeepEmptyServices(true))
	}

	if len(c.PathRewrites) > 0 {
		rules := make(map[string]string, len(c.PathRewrites))

		for _, rewrite := range c.PathRewrites {
			from, to, ok := strings.Cut(rewrite, "=")
			if !ok || from == "" {
				return nil, fmt.Errorf("%w: path rewrite %q must be in from=to form",
					ErrInvalidOption, rewrite)
			}

			rules[from] = to
		}

		opts = append(opts, WithDisplayPath(PathRewriter(rules)))
	}

	return NewParser(opts...), nil
}
