// Package lexgen provides the regular-expression front end of a lexer
// generator. It reads a rule file, normalizes every rule, computes the
// character classes shared by all rules and writes the character map as
// Go source.
package lexgen

import (
	"context"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/KromDaniel/lexgen/internal/compiler"
	"github.com/KromDaniel/lexgen/internal/lexspec"
)

// Options configures the rule compilation process.
type Options struct {
	// SpecFile is the rule file to compile
	SpecFile string `yaml:"spec"`

	// OutputFile is the path where generated code will be written
	OutputFile string `yaml:"output"`

	// Package is the Go package name for the generated code
	Package string `yaml:"package"`

	// Name is the prefix for generated identifiers (e.g., "Tok" generates "TokClassOf")
	Name string `yaml:"name"`

	// Caseless makes every rule caseless, not only those declared with %caseless
	Caseless bool `yaml:"caseless"`

	// ResolveTilde rewrites ~r into negation and repetition
	ResolveTilde bool `yaml:"resolve_tilde"`

	// Reverse also builds the reverse of every rule
	Reverse bool `yaml:"reverse"`

	// MaxCodePoint is the top of the alphabet. Zero means the whole of Unicode.
	MaxCodePoint rune `yaml:"max_code_point"`

	// BasicUnicode restricts properties to general categories and scripts
	BasicUnicode bool `yaml:"basic_unicode"`

	// Workers is the number of rules normalized concurrently
	Workers int `yaml:"workers"`

	// Verbose logs every pipeline stage
	Verbose bool `yaml:"verbose"`

	// Log receives messages and warnings. Nil means a default logger.
	Log *zap.SugaredLogger `yaml:"-"`
}

// Result is a compiled rule set.
type Result = compiler.Result

// Validate checks if the options are valid for code generation.
func (o Options) Validate() error {
	if err := o.validateInput(); err != nil {
		return err
	}
	if o.Name == "" {
		return xerrors.New("name cannot be empty")
	}
	if o.OutputFile == "" {
		return xerrors.New("output file cannot be empty")
	}
	if o.Package == "" {
		return xerrors.New("package cannot be empty")
	}
	return nil
}

// validateInput checks the options needed to read and compile rules.
func (o Options) validateInput() error {
	if o.SpecFile == "" {
		return xerrors.New("spec file cannot be empty")
	}
	if o.MaxCodePoint < 0 || o.MaxCodePoint > unicode.MaxRune {
		return xerrors.Errorf("max code point %#x out of range", o.MaxCodePoint)
	}
	if o.Workers < 0 {
		return xerrors.Errorf("workers cannot be negative: %d", o.Workers)
	}
	return nil
}

// Compile reads the rule file and writes the character map to
// opts.OutputFile. It returns an error if a rule is invalid or code
// generation fails.
func Compile(ctx context.Context, opts Options) error {
	if err := opts.Validate(); err != nil {
		return xerrors.Errorf("invalid options: %w", err)
	}

	c, err := newCompiler(opts)
	if err != nil {
		return err
	}
	res, err := c.Compile(ctx)
	if err != nil {
		return xerrors.Errorf("failed to compile rules: %w", err)
	}
	if err := c.Generate(res); err != nil {
		return xerrors.Errorf("failed to generate code: %w", err)
	}
	return nil
}

// Build reads the rule file and compiles it without generating code.
func Build(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validateInput(); err != nil {
		return nil, xerrors.Errorf("invalid options: %w", err)
	}
	c, err := newCompiler(opts)
	if err != nil {
		return nil, err
	}
	res, err := c.Compile(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to compile rules: %w", err)
	}
	return res, nil
}

func newCompiler(opts Options) (*compiler.Compiler, error) {
	spec, err := lexspec.ParseFile(opts.SpecFile)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse rules: %w", err)
	}

	rules := make([]*compiler.Rule, len(spec.Rules))
	for i, r := range spec.Rules {
		rules[i] = &compiler.Rule{
			Name:     r.Name,
			Expr:     r.Expr,
			Caseless: r.Caseless,
			File:     r.Pos.Filename,
			Line:     r.Pos.Line,
		}
	}

	c := compiler.New(compiler.Config{
		Rules:        rules,
		Macros:       spec.Macros,
		Name:         opts.Name,
		Package:      opts.Package,
		OutputFile:   opts.OutputFile,
		Caseless:     opts.Caseless,
		MaxCodePoint: opts.MaxCodePoint,
		BasicUnicode: opts.BasicUnicode,
		ResolveTilde: opts.ResolveTilde,
		ReverseRules: opts.Reverse,
		Workers:      opts.Workers,
		Verbose:      opts.Verbose,
		Log:          opts.Log,
	})
	c.Logger().Log("Parsed %s: %d rules, %d macros", opts.SpecFile, len(rules), spec.Macros.Len())
	return c, nil
}
