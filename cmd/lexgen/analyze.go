package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/lexgen/internal/regex"
	"github.com/KromDaniel/lexgen/pkg/lexgen"
)

func analyzeCommand(c *cli) *cobra.Command {
	var flags optionFlags
	var format string
	var dump bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Describe the rules of a rule file without generating code",
		Args:  cobra.NoArgs,
		RunE:  analyze(c, &flags, &format, &dump),
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (\"yaml\", \"json\")")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the normalized tree of every rule instead")
	return cmd
}

func analyze(c *cli, flags *optionFlags, format *string, dump *bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := flags.resolve(cmd, c.configFile)
		if err != nil {
			return err
		}
		opts.Log = c.log
		out := cmd.OutOrStdout()

		if *dump {
			res, err := lexgen.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, r := range res.Rules {
				fmt.Fprintf(out, "%s (%s:%d)\n%s", r.Name, r.File, r.Line, regex.Print(r.Expr, "  "))
				if r.Reversed != nil {
					fmt.Fprintf(out, "%s reversed\n%s", r.Name, regex.Print(r.Reversed, "  "))
				}
			}
			return nil
		}

		a, err := lexgen.Analyze(cmd.Context(), opts)
		if err != nil {
			return err
		}
		switch *format {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(a); err != nil {
				return xerrors.Errorf("unable to encode analysis: %w", err)
			}
			return enc.Close()
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(a)
		}
		return xerrors.Errorf("unsupported value \"%s\" for --format", *format)
	}
}
