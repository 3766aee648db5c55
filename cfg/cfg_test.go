package cfg

import (
	"errors"
	"testing"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("S").T("a").End() // S  ->  S a
	b.LHS("S").T("a").End()        // S  ->  a
	g, err := b.Grammar()
	if err != nil {
		t.Error(err)
	}
	if g.StartSymbol() != "S" {
		t.Errorf("expected start symbol S, is %s", g.StartSymbol())
	}
	if !g.IsTerminal("a") || !g.IsNonterminal("S") {
		t.Errorf("symbol classification is broken")
	}
	if g.RuleCount() != 2 {
		t.Errorf("expected 2 rules, have %d", g.RuleCount())
	}
	rules := g.RulesFor("S")
	if len(rules) != 2 || len(rules[0].RHS) != 2 || rules[0].RHS[0] != "S" {
		t.Errorf("unexpected rules for S: %v", rules)
	}
	g.Dump()
}

func TestGrammarBuilderEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Error(err)
	}
	rules := g.RulesFor("S")
	if len(rules) != 1 || len(rules[0].RHS) != 0 {
		t.Errorf("expected a single ε-rule for S, have %v", rules)
	}
}

func TestSymbolClassesDisjoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	g := NewGrammar("G")
	if err := g.AddNonterminal("S"); err != nil {
		t.Error(err)
	}
	err := g.AddTerminal("S")
	if !errors.Is(err, ErrSymbolClass) {
		t.Errorf("expected ErrSymbolClass, got %v", err)
	}
	if g.IsTerminal("S") {
		t.Errorf("rejected operation must leave the grammar unchanged")
	}
	if err = g.AddNonterminal("S"); err != nil {
		t.Errorf("re-adding a nonterminal must be a no-op, got %v", err)
	}
	if err = g.AddTerminal(""); !errors.Is(err, ErrEmptySymbol) {
		t.Errorf("expected ErrEmptySymbol, got %v", err)
	}
}

func TestAddRuleRejectsTerminalLHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	g := NewGrammar("G")
	if err := g.AddTerminal("a"); err != nil {
		t.Error(err)
	}
	err := g.AddRule("a", []cds.Symbol{"b"})
	if !errors.Is(err, ErrSymbolClass) {
		t.Errorf("expected ErrSymbolClass for terminal LHS, got %v", err)
	}
	if g.RuleCount() != 0 {
		t.Errorf("rejected rule must not be stored")
	}
}

func TestDuplicateRulesPreserved(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	g := NewGrammar("G")
	if err := g.AddRule("S", []cds.Symbol{"a"}); err != nil {
		t.Error(err)
	}
	if err := g.AddRule("S", []cds.Symbol{"a"}); err != nil {
		t.Error(err)
	}
	if len(g.RulesFor("S")) != 2 {
		t.Errorf("duplicate rules are not deduplicated in the multimap")
	}
}

func TestFinalizePromotesTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	g := NewGrammar("G")
	if err := g.AddRule("S", []cds.Symbol{"A", "x"}); err != nil {
		t.Error(err)
	}
	if err := g.AddRule("A", []cds.Symbol{"y"}); err != nil {
		t.Error(err)
	}
	g.Finalize()
	if !g.IsTerminal("x") || !g.IsTerminal("y") {
		t.Errorf("RHS symbols without a defining rule must become terminals")
	}
	if g.IsTerminal("A") || !g.IsNonterminal("A") {
		t.Errorf("symbols with rules must stay nonterminals")
	}
	g.Finalize() // idempotent
	if len(g.Terminals()) != 2 {
		t.Errorf("expected 2 terminals, have %v", g.Terminals())
	}
}

func TestStartSymbolIsFirstLHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.cfg")
	defer teardown()
	//
	g := NewGrammar("G")
	if err := g.AddRule("Expr", []cds.Symbol{"Term"}); err != nil {
		t.Error(err)
	}
	if err := g.AddRule("Term", []cds.Symbol{"x"}); err != nil {
		t.Error(err)
	}
	if g.StartSymbol() != "Expr" {
		t.Errorf("expected first LHS to become the start symbol, is %s", g.StartSymbol())
	}
	if err := g.SetStartSymbol("Term"); err != nil {
		t.Error(err)
	}
	if g.StartSymbol() != "Term" {
		t.Errorf("expected start symbol override to Term, is %s", g.StartSymbol())
	}
	if err := g.SetStartSymbol("x"); err == nil {
		t.Errorf("a terminal must not become the start symbol")
	}
}
