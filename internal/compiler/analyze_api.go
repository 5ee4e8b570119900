package compiler

import (
	"context"
	"sort"

	"github.com/KromDaniel/lexgen/internal/regex"
)

// AnalysisResult contains the results of rule analysis without code generation.
type AnalysisResult struct {
	// FeatureLabels are derived from rule structure (sorted alphabetically)
	FeatureLabels []string `json:"feature_labels" yaml:"feature_labels"`

	Rules      []RuleAnalysis `json:"rules" yaml:"rules"`
	NumClasses int            `json:"num_classes" yaml:"num_classes"`
	Size       int            `json:"size" yaml:"size"`
	Unused     []string       `json:"unused_macros,omitempty" yaml:"unused_macros,omitempty"`
}

// RuleAnalysis describes one rule.
type RuleAnalysis struct {
	Name          string   `json:"name" yaml:"name"`
	Line          int      `json:"line" yaml:"line"`
	FeatureLabels []string `json:"feature_labels" yaml:"feature_labels"`
	Size          int      `json:"size" yaml:"size"`
	ReverseSize   int      `json:"reverse_size,omitempty" yaml:"reverse_size,omitempty"`
	Classes       int      `json:"classes" yaml:"classes"` // Distinct classes the rule refers to
}

// Analyze compiles the rule set and describes it without generating code.
// It returns an error if any rule fails to compile.
func (c *Compiler) Analyze(ctx context.Context) (*AnalysisResult, error) {
	res, err := c.Compile(ctx)
	if err != nil {
		return nil, err
	}

	out := &AnalysisResult{
		NumClasses: res.Partition.NumClasses(),
		Size:       res.Size,
		Unused:     res.Unused,
	}
	all := make(map[string]bool)
	for i, cr := range res.Rules {
		labels := deriveFeatureLabels(c.config.Rules[i].Expr, c.config.Macros, cr.Caseless)
		for _, l := range labels {
			all[l] = true
		}
		out.Rules = append(out.Rules, RuleAnalysis{
			Name:          cr.Name,
			Line:          cr.Line,
			FeatureLabels: labels,
			Size:          cr.Size,
			ReverseSize:   cr.ReverseSize,
			Classes:       len(regex.Classes(cr.Expr, res.Partition)),
		})
	}
	out.FeatureLabels = sortedKeys(all)
	return out, nil
}

// deriveFeatureLabels extracts feature labels from the declared rule,
// following macro references. Labels are sorted alphabetically.
func deriveFeatureLabels(n regex.Node, macros *regex.Macros, caseless bool) []string {
	labels := make(map[string]bool)
	if caseless {
		labels["Caseless"] = true
	}

	seen := make(map[string]bool)
	var visit func(regex.Node)
	visit = func(n regex.Node) {
		regex.Walk(n, func(x regex.Node) bool {
			if l, ok := kindLabels[x.Kind()]; ok {
				labels[l] = true
			}
			if ref, ok := x.(*regex.MacroRef); ok && !seen[ref.Name] {
				seen[ref.Name] = true
				if def, ok := macros.Lookup(ref.Name); ok {
					visit(def)
				}
			}
			return true
		})
	}
	visit(n)

	return sortedKeys(labels)
}

var kindLabels = map[regex.Kind]string{
	regex.KindAlternation:           "Alternation",
	regex.KindStar:                  "Repetition",
	regex.KindPlus:                  "Repetition",
	regex.KindOptional:              "Optional",
	regex.KindNegation:              "Negation",
	regex.KindUpto:                  "Upto",
	regex.KindLiteralCaseless:       "Caseless",
	regex.KindLiteralStringCaseless: "Caseless",
	regex.KindLiteralString:         "String",
	regex.KindPredefinedClass:       "PredefinedClass",
	regex.KindPropertyClass:         "Property",
	regex.KindMacroRef:              "Macros",
	regex.KindClassComplement:       "ClassComplement",
	regex.KindClassOperation:        "ClassOperation",
}

func sortedKeys(m map[string]bool) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
