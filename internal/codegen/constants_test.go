package codegen

import "testing"

func TestNames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{Exported("lexer", ClassOfName), "LexerClassOf"},
		{Exported("Tokens", NumClassesName), "TokensNumClasses"},
		{Unexported("Tokens", ASCIIClassesName), "tokensASCIIClasses"},
		{RuleName("Lexer", "number"), "LexerRuleNumber"},
		{RuleName("Lexer", "KW_IF"), "LexerRuleKW_IF"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"A", "a"},
		{"ABC", "aBC"},
		{"Hello", "hello"},
		{"hello", "hello"},
		{"X", "x"},
		{"Ärger", "ärger"},
	}

	for _, tt := range tests {
		got := LowerFirst(tt.input)
		if got != tt.want {
			t.Errorf("LowerFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"hello", "Hello"},
		{"Hello", "Hello"},
		{"x", "X"},
		{"_x", "_x"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
