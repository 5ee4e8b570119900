// Package compiler drives the regex passes over a rule set. It normalizes
// every rule, builds the character class partition shared by all rules
// and emits the resulting character map as Go source.
package compiler

import (
	"context"
	"io"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/KromDaniel/lexgen/internal/charclass"
	"github.com/KromDaniel/lexgen/internal/regex"
	"github.com/KromDaniel/lexgen/internal/uniprops"
)

// Rule is a named pattern with the location it was declared at.
type Rule struct {
	Name     string
	Expr     regex.Node
	Caseless bool
	File     string
	Line     int
}

// Config holds the configuration for compilation and code generation.
type Config struct {
	Rules      []*Rule
	Macros     *regex.Macros
	Name       string // Prefix of generated identifiers
	Package    string // Package of the generated file
	OutputFile string

	Caseless     bool              // Treat every rule as caseless
	Provider     uniprops.Provider // Unicode properties; built from MaxCodePoint and BasicUnicode when nil
	MaxCodePoint rune              // Top of the alphabet (0 = unicode.MaxRune)
	BasicUnicode bool              // Restrict properties to general categories and scripts
	ResolveTilde bool              // Rewrite upto nodes into negation and repetition
	ReverseRules bool              // Also build the reverse of every rule
	Workers      int               // Rules normalized concurrently (0 = DefaultWorkers)
	Verbose      bool              // Enable verbose logging of pipeline decisions

	// Log receives pipeline messages and warnings. When nil a development
	// logger is used in verbose mode and everything is discarded otherwise.
	Log *zap.SugaredLogger
}

// Compiler runs the passes configured by a Config.
type Compiler struct {
	config   Config
	file     *jen.File
	logger   *Logger
	props    uniprops.Provider
	expander *regex.ClassExpander
}

// CompiledRule is a rule after normalization.
type CompiledRule struct {
	Name     string
	Caseless bool
	File     string
	Line     int

	// Expr is free of macros, predefined, property and compound classes,
	// and of upto nodes when tilde resolution is on.
	Expr regex.Node
	// Reversed matches the reverse language of Expr; nil unless
	// Config.ReverseRules is set.
	Reversed regex.Node

	Size        int // State estimate of the declared pattern
	ReverseSize int
}

// Result is what the automaton builder consumes.
type Result struct {
	Rules     []*CompiledRule
	Partition *charclass.Partition
	Size      int      // Sum of the rule size estimates
	Unused    []string // Macros no rule refers to
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	if config.Name == "" {
		config.Name = DefaultName
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if config.Macros == nil {
		config.Macros = regex.NewMacros()
	}

	props := config.Provider
	if props == nil {
		props = uniprops.New(uniprops.Options{
			MaxCodePoint: config.MaxCodePoint,
			Basic:        config.BasicUnicode,
		})
	}

	logger := NewLogger(config.Verbose)
	if config.Log != nil {
		logger.SetOutput(config.Log)
	}

	return &Compiler{
		config:   config,
		file:     jen.NewFile(config.Package),
		logger:   logger,
		props:    props,
		expander: regex.NewClassExpander(props),
	}
}

// Logger returns the compiler's logger.
func (c *Compiler) Logger() *Logger {
	return c.logger
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// MaxCodePoint returns the top of the alphabet rules are compiled over.
func (c *Compiler) MaxCodePoint() rune {
	return c.props.MaxCodePoint()
}

// Compile normalizes every rule and builds the partition. Rules are
// normalized by up to Config.Workers goroutines; the partition is refined
// afterwards in declaration order.
func (c *Compiler) Compile(ctx context.Context) (*Result, error) {
	c.logger.Section("Rules")
	c.logger.Log("Rules: %d, macros: %d, workers: %d", len(c.config.Rules), c.config.Macros.Len(), c.config.Workers)
	c.logger.Log("Alphabet: [0, %#x]", c.MaxCodePoint())

	res := &Result{
		Rules:  make([]*CompiledRule, len(c.config.Rules)),
		Unused: c.config.Macros.Unused(c.exprs()),
	}
	for _, name := range res.Unused {
		c.logger.Warn("macro %s is never used", name)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.config.Workers)
	for i, r := range c.config.Rules {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			cr, err := c.compileRule(r)
			if err != nil {
				return xerrors.Errorf("rule %s (%s:%d): %w", r.Name, r.File, r.Line, err)
			}
			res.Rules[i] = cr
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	c.logger.Section("Partition")
	res.Partition = charclass.New(c.MaxCodePoint())
	for _, cr := range res.Rules {
		before := res.Partition.NumClasses()
		if err := regex.MakeClasses(cr.Expr, res.Partition, cr.Caseless); err != nil {
			return nil, xerrors.Errorf("rule %s (%s:%d): %w", cr.Name, cr.File, cr.Line, err)
		}
		res.Size += cr.Size
		if c.logger.Enabled() {
			c.logger.Log("%s: size %d, classes %d -> %d", cr.Name, cr.Size, before, res.Partition.NumClasses())
			c.logger.Log("%s = %s", cr.Name, cr.Expr)
		}
	}
	c.logger.Log("Character classes: %d, total size estimate: %d", res.Partition.NumClasses(), res.Size)
	return res, nil
}

// compileRule runs the passes of one rule in order: macro expansion,
// case folding, class expansion, class normalization and, when enabled,
// tilde resolution and reversal.
func (c *Compiler) compileRule(r *Rule) (*CompiledRule, error) {
	max := c.MaxCodePoint()
	caseless := r.Caseless || c.config.Caseless

	size, err := regex.Size(r.Expr, c.config.Macros)
	if err != nil {
		return nil, err
	}

	n, err := regex.ExpandMacros(r.Expr, c.config.Macros)
	if err != nil {
		return nil, err
	}
	for _, ch := range outsideAlphabet(n, max) {
		c.logger.Warn("rule %s (%s:%d): %U is outside the alphabet [0, %#x] and never matches", r.Name, r.File, r.Line, ch, max)
	}
	if caseless {
		n = regex.Caseless(n)
	}
	n, err = c.expander.Expand(n, caseless)
	if err != nil {
		return nil, err
	}
	n, err = regex.NormalizeClasses(n, max)
	if err != nil {
		return nil, err
	}
	if c.config.ResolveTilde {
		n = regex.ResolveTilde(n, max)
	}

	cr := &CompiledRule{
		Name:     r.Name,
		Caseless: caseless,
		File:     r.File,
		Line:     r.Line,
		Expr:     n,
		Size:     size,
	}

	if c.config.ReverseRules {
		cr.Reversed, err = regex.Reverse(n, max)
		if err != nil {
			return nil, err
		}
		cr.ReverseSize, err = regex.Size(cr.Reversed, c.config.Macros)
		if err != nil {
			return nil, err
		}
		c.logger.Log("%s: reverse size %d", r.Name, cr.ReverseSize)
	}
	return cr, nil
}

// outsideAlphabet returns the literal characters of n above max, once each,
// in the order they appear. Complements and class operations are skipped:
// an item there can still shape what the class matches.
func outsideAlphabet(n regex.Node, max rune) []rune {
	var res []rune
	seen := make(map[rune]bool)
	add := func(ch rune) {
		if ch > max && !seen[ch] {
			seen[ch] = true
			res = append(res, ch)
		}
	}
	regex.Walk(n, func(x regex.Node) bool {
		switch x := x.(type) {
		case *regex.Literal:
			add(x.Char)
		case *regex.LiteralCaseless:
			add(x.Char)
		case *regex.LiteralString:
			for _, ch := range x.Text {
				add(ch)
			}
		case *regex.LiteralStringCaseless:
			for _, ch := range x.Text {
				add(ch)
			}
		case *regex.ClassComplement, *regex.ClassOperation:
			return false
		}
		return true
	})
	return res
}

func (c *Compiler) exprs() []regex.Node {
	res := make([]regex.Node, len(c.config.Rules))
	for i, r := range c.config.Rules {
		res[i] = r.Expr
	}
	return res
}

// Generate renders the character map of res and writes it to the
// configured output file.
func (c *Compiler) Generate(res *Result) error {
	if c.config.OutputFile == "" {
		return xerrors.New("output file cannot be empty")
	}
	c.build(res)
	if err := c.file.Save(c.config.OutputFile); err != nil {
		return xerrors.Errorf("failed to save file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)
	return nil
}

// Render writes the formatted character map of res to w.
func (c *Compiler) Render(w io.Writer, res *Result) error {
	c.build(res)
	if err := c.file.Render(w); err != nil {
		return xerrors.Errorf("failed to render file: %w", err)
	}
	return nil
}

func (c *Compiler) build(res *Result) {
	c.file = jen.NewFile(c.config.Package)
	c.file.HeaderComment("Code generated by lexgen. DO NOT EDIT.")
	c.generateRules(res.Rules)
	c.generateClassMap(res.Partition)
}
