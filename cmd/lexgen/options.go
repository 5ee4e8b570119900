package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/KromDaniel/lexgen/pkg/lexgen"
)

// optionFlags are the command line forms of lexgen.Options. Only flags
// given explicitly override the config file.
type optionFlags struct {
	opts         lexgen.Options
	maxCodePoint uint32
}

func (f *optionFlags) register(cmd *cobra.Command, output bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.opts.SpecFile, "spec", "s", "", "Rule file to compile")
	if output {
		flags.StringVarP(&f.opts.OutputFile, "output", "o", "", "Output file for the generated code")
		flags.StringVarP(&f.opts.Package, "package", "p", "", "Package name of the generated code")
		flags.StringVarP(&f.opts.Name, "name", "n", "", "Prefix of generated identifiers")
	}
	flags.BoolVar(&f.opts.Caseless, "caseless", false, "Treat every rule as caseless")
	flags.BoolVar(&f.opts.ResolveTilde, "resolve-tilde", false, "Rewrite upto expressions into negation and repetition")
	flags.BoolVar(&f.opts.Reverse, "reverse", false, "Also build the reverse of every rule")
	flags.Uint32Var(&f.maxCodePoint, "max-code-point", 0, "Top of the alphabet (0 means all of Unicode)")
	flags.BoolVar(&f.opts.BasicUnicode, "basic-unicode", false, "Only use general categories and scripts as properties")
	flags.IntVarP(&f.opts.Workers, "workers", "w", 0, "Rules normalized concurrently")
	flags.BoolVarP(&f.opts.Verbose, "verbose", "v", false, "Log every pipeline stage")
}

// resolve loads the config file, if any, and applies the flags that were
// set on the command line.
func (f *optionFlags) resolve(cmd *cobra.Command, configFile string) (lexgen.Options, error) {
	var opts lexgen.Options
	if configFile != "" {
		var err error
		if opts, err = lexgen.LoadOptions(configFile); err != nil {
			return opts, xerrors.Errorf("unable to load options: %w", err)
		}
	}

	changed := cmd.Flags().Changed
	if changed("spec") {
		opts.SpecFile = f.opts.SpecFile
	}
	if changed("output") {
		opts.OutputFile = f.opts.OutputFile
	}
	if changed("package") {
		opts.Package = f.opts.Package
	}
	if changed("name") {
		opts.Name = f.opts.Name
	}
	if changed("caseless") {
		opts.Caseless = f.opts.Caseless
	}
	if changed("resolve-tilde") {
		opts.ResolveTilde = f.opts.ResolveTilde
	}
	if changed("reverse") {
		opts.Reverse = f.opts.Reverse
	}
	if changed("max-code-point") {
		opts.MaxCodePoint = rune(f.maxCodePoint)
	}
	if changed("basic-unicode") {
		opts.BasicUnicode = f.opts.BasicUnicode
	}
	if changed("workers") {
		opts.Workers = f.opts.Workers
	}
	if changed("verbose") {
		opts.Verbose = f.opts.Verbose
	}
	return opts, nil
}
