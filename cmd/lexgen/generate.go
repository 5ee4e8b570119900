package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/KromDaniel/lexgen/pkg/lexgen"
)

func generateCommand(c *cli) *cobra.Command {
	var flags optionFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the character map of a rule file",
		Args:  cobra.NoArgs,
		RunE:  generate(c, &flags),
	}
	flags.register(cmd, true)
	return cmd
}

func generate(c *cli, flags *optionFlags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := flags.resolve(cmd, c.configFile)
		if err != nil {
			return err
		}
		opts.Log = c.log

		if err := lexgen.Compile(cmd.Context(), opts); err != nil {
			return xerrors.Errorf("unable to generate %s: %w", opts.OutputFile, err)
		}
		c.log.Infof("wrote %s", opts.OutputFile)
		return nil
	}
}
