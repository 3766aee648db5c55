package cfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestReadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	text := `S S a
S a
`
	g, err := ReadGrammar("test", strings.NewReader(text))
	if err != nil {
		t.Error(err)
	}
	if g.StartSymbol() != "S" {
		t.Errorf("expected start symbol S, is %s", g.StartSymbol())
	}
	if !g.IsTerminal("a") || !g.IsNonterminal("S") {
		t.Errorf("expected 'a' terminal and 'S' nonterminal")
	}
	if len(g.RulesFor("S")) != 2 {
		t.Errorf("expected 2 rules for S, have %d", len(g.RulesFor("S")))
	}
}

func TestReadGrammarEpsilonRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	g, err := ReadGrammar("test", strings.NewReader("S\n"))
	if err != nil {
		t.Error(err)
	}
	rules := g.RulesFor("S")
	if len(rules) != 1 || len(rules[0].RHS) != 0 {
		t.Errorf("a lone LHS line is an ε-rule, have %v", rules)
	}
}

func TestReadGrammarBlankLineTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	text := `S a

T b
`
	g, err := ReadGrammar("test", strings.NewReader(text))
	if err != nil {
		t.Error(err)
	}
	if g.IsNonterminal("T") || len(g.RulesFor("T")) != 0 {
		t.Errorf("rules after a blank line must be ignored")
	}
	if g.RuleCount() != 1 {
		t.Errorf("expected a single rule, have %d", g.RuleCount())
	}
}

func TestReadGrammarWithoutRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	if _, err := ReadGrammar("test", strings.NewReader("")); err != ErrNoStartSymbol {
		t.Errorf("expected ErrNoStartSymbol, got %v", err)
	}
}

func TestLoadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "g.txt")
	if err := os.WriteFile(path, []byte("S a b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadGrammar(path)
	if err != nil {
		t.Error(err)
	}
	if g.Name != "g.txt" {
		t.Errorf("expected grammar named after the file, is %s", g.Name)
	}
	if _, err = LoadGrammar(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("expected an error for an unopenable grammar file")
	}
}

func TestReadInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	input := ReadInput("a b  c")
	if len(input) != 3 || input[1] != "b" {
		t.Errorf("inline input not split correctly: %v", input)
	}
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("x\ny z\n"), 0644); err != nil {
		t.Fatal(err)
	}
	input = ReadInput(path)
	if len(input) != 3 || input[0] != "x" || input[2] != "z" {
		t.Errorf("file input not read correctly: %v", input)
	}
}
