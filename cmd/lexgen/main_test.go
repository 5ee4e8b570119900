package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/lexgen/pkg/lexgen"
)

var rulesFile = filepath.Join("testdata", "rules.lex")

// run executes the root command with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		config  string
		wantErr string
	}{
		{"debug", "console", ""},
		{"info", "json", ""},
		{"warning", "minimal", ""},
		{"error", "console", ""},
		{"trace", "console", "--log-level"},
		{"info", "xml", "--log-config"},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.config, func(t *testing.T) {
			log, err := newLogger(tt.level, tt.config)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rules_classes.go")
	_, err := run(t, "generate", "-s", rulesFile, "-o", out, "-p", "rules", "-n", "Rules", "--resolve-tilde")
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(src), "package rules")
	require.Contains(t, string(src), "func RulesClassOf(r rune) int")
	require.Contains(t, string(src), "RulesRuleKW_WHILE")
}

func TestGenerateCommandErrors(t *testing.T) {
	_, err := run(t, "generate", "-s", rulesFile)
	require.ErrorContains(t, err, "invalid options")

	_, err = run(t, "generate", "--log-config", "xml")
	require.ErrorContains(t, err, "unsupported value")

	_, err = run(t, "generate", "extra")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "from_config.go")
	config := filepath.Join(dir, "lexgen.yaml")
	spec, err := filepath.Abs(rulesFile)
	require.NoError(t, err)

	raw, err := yaml.Marshal(map[string]interface{}{
		"spec":    spec,
		"output":  out,
		"package": "cfg",
		"name":    "Cfg",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(config, raw, 0o644))

	// Flags override the file
	_, err = run(t, "generate", "--config", config, "-n", "Flag")
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(src), "package cfg")
	require.Contains(t, string(src), "FlagClassOf")
	require.NotContains(t, string(src), "CfgClassOf")

	_, err = run(t, "generate", "--config", filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		decode func([]byte, interface{}) error
	}{
		{"yaml", nil, yaml.Unmarshal},
		{"json", []string{"--format", "json"}, json.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"analyze", "-s", rulesFile, "--max-code-point", "255"}, tt.args...)...)
			require.NoError(t, err)

			var a lexgen.AnalysisResult
			require.NoError(t, tt.decode([]byte(out), &a))
			require.Len(t, a.Rules, 3)
			require.Equal(t, "KW_WHILE", a.Rules[0].Name)
			require.Equal(t, 3, a.Rules[0].Line)
			require.Contains(t, a.FeatureLabels, "Caseless")
			require.Contains(t, a.FeatureLabels, "Optional")
			require.Positive(t, a.NumClasses)
		})
	}

	_, err := run(t, "analyze", "-s", rulesFile, "--format", "xml")
	require.ErrorContains(t, err, "--format")
}

func TestAnalyzeDump(t *testing.T) {
	out, err := run(t, "analyze", "-s", rulesFile, "--dump", "--reverse", "--max-code-point", "127")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "KW_WHILE (testdata/rules.lex:3)\n"), out)
	require.Contains(t, out, "NUMBER reversed\n")
	require.Contains(t, out, "  LiteralStringCaseless")
	require.NotContains(t, out, "MacroRef")
}
