package lexgen

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/KromDaniel/lexgen/internal/compiler"
)

// AnalysisResult contains the results of rule analysis without code generation.
type AnalysisResult = compiler.AnalysisResult

// Analyze compiles the rule file and describes every rule without
// generating code.
//
// The analysis returns:
//   - FeatureLabels: derived from rule structure (e.g., "Caseless", "Upto")
//   - NumClasses: the size of the alphabet the automaton works on
//   - Size: the state estimate of the whole rule set
//
// Label arrays are sorted alphabetically for deterministic comparison.
func Analyze(ctx context.Context, opts Options) (*AnalysisResult, error) {
	if err := opts.validateInput(); err != nil {
		return nil, xerrors.Errorf("invalid options: %w", err)
	}
	c, err := newCompiler(opts)
	if err != nil {
		return nil, err
	}
	res, err := c.Analyze(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to analyze rules: %w", err)
	}
	return res, nil
}
