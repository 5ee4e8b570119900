package compiler

import (
	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/lexgen/internal/charclass"
	"github.com/KromDaniel/lexgen/internal/codegen"
)

// asciiClasses returns the class of every ASCII code point, or -1 for
// code points above the alphabet.
func asciiClasses(p *charclass.Partition) [MaxASCIIRune]int {
	var table [MaxASCIIRune]int
	for i := range table {
		table[i] = -1
	}
	for _, iv := range p.Intervals() {
		for c := iv.Lo; c <= iv.Hi && c < MaxASCIIRune; c++ {
			table[c] = iv.Class
		}
		if iv.Hi >= MaxASCIIRune {
			break
		}
	}
	return table
}

// generateClassMap emits the partition: the class count, the sorted
// range table, a flat table for ASCII and the lookup function.
func (c *Compiler) generateClassMap(p *charclass.Partition) {
	name := c.config.Name
	rangeType := codegen.Exported(name, codegen.ClassRangeTypeName)
	ranges := codegen.Exported(name, codegen.ClassRangesName)
	ascii := codegen.Unexported(name, codegen.ASCIIClassesName)

	c.file.Commentf("%s is the number of character classes.", codegen.Exported(name, codegen.NumClassesName))
	c.file.Const().Id(codegen.Exported(name, codegen.NumClassesName)).Op("=").Lit(p.NumClasses())
	c.file.Line()

	c.file.Commentf("%s maps a run of code points to its character class.", rangeType)
	c.file.Type().Id(rangeType).Struct(
		jen.List(jen.Id("Lo"), jen.Id("Hi")).Rune(),
		jen.Id("Class").Int(),
	)
	c.file.Line()

	var rows []jen.Code
	for _, iv := range p.Intervals() {
		rows = append(rows, jen.Values(jen.Dict{
			jen.Id("Lo"):    jen.Lit(int(iv.Lo)),
			jen.Id("Hi"):    jen.Lit(int(iv.Hi)),
			jen.Id("Class"): jen.Lit(iv.Class),
		}))
	}
	c.file.Commentf("%s covers the alphabet, sorted by code point.", ranges)
	c.file.Var().Id(ranges).Op("=").Index().Id(rangeType).Values(rows...)
	c.file.Line()

	var cells []jen.Code
	for _, cl := range asciiClasses(p) {
		cells = append(cells, jen.Lit(cl))
	}
	c.file.Var().Id(ascii).Op("=").Index(jen.Lit(MaxASCIIRune)).Int32().Values(cells...)
	c.file.Line()

	in := jen.Id(codegen.InputName)
	idx := jen.Id(codegen.IndexName)
	c.file.Commentf("%s returns the character class of %s, or -1 when %s is outside the alphabet.",
		codegen.Exported(name, codegen.ClassOfName), codegen.InputName, codegen.InputName)
	c.file.Func().Id(codegen.Exported(name, codegen.ClassOfName)).Params(in.Clone().Rune()).Int().Block(
		jen.If(in.Clone().Op(">=").Lit(0).Op("&&").Add(in.Clone()).Op("<").Lit(MaxASCIIRune)).Block(
			jen.Return(jen.Int().Call(jen.Id(ascii).Index(in.Clone()))),
		),
		jen.Add(idx.Clone()).Op(":=").Qual("sort", "Search").Call(
			jen.Len(jen.Id(ranges)),
			jen.Func().Params(idx.Clone().Int()).Bool().Block(
				jen.Return(jen.Id(ranges).Index(idx.Clone()).Dot("Hi").Op(">=").Add(in.Clone())),
			),
		),
		jen.If(
			idx.Clone().Op("<").Len(jen.Id(ranges)).Op("&&").
				Id(ranges).Index(idx.Clone()).Dot("Lo").Op("<=").Add(in.Clone()),
		).Block(
			jen.Return(jen.Id(ranges).Index(idx.Clone()).Dot("Class")),
		),
		jen.Return(jen.Lit(-1)),
	)
	c.file.Line()
}

// generateRules emits one index constant per rule, the rule names and the
// size estimates the automaton builder can pre-size its tables with.
func (c *Compiler) generateRules(rules []*CompiledRule) {
	name := c.config.Name
	if len(rules) == 0 {
		return
	}

	var consts []jen.Code
	var names, sizes []jen.Code
	for i, r := range rules {
		consts = append(consts, jen.Id(codegen.RuleName(name, r.Name)).Op("=").Lit(i))
		names = append(names, jen.Lit(r.Name))
		sizes = append(sizes, jen.Lit(r.Size))
	}

	c.file.Comment("Rule indices in declaration order.")
	c.file.Const().Defs(consts...)
	c.file.Line()

	c.file.Var().Id(codegen.Exported(name, codegen.RuleNamesName)).Op("=").Index(jen.Op("...")).String().Values(names...)
	c.file.Line()

	c.file.Commentf("%s holds the state estimate of every rule.", codegen.Exported(name, codegen.RuleSizesName))
	c.file.Var().Id(codegen.Exported(name, codegen.RuleSizesName)).Op("=").Index(jen.Op("...")).Int().Values(sizes...)
	c.file.Line()
}
