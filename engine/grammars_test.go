package engine

import (
	"testing"

	"github.com/npillmayer/cds/cfg"
)

// Test grammars cover the boundary behaviors of the CDS model: plain
// matching, ε-productions, left recursion and ambiguity.

// S ::= a
func singleTerminalGrammar(t *testing.T) *cfg.Grammar {
	b := cfg.NewGrammarBuilder("single")
	b.LHS("S").T("a").End()
	return mustGrammar(t, b)
}

// S ::= ε
func epsilonGrammar(t *testing.T) *cfg.Grammar {
	b := cfg.NewGrammarBuilder("epsilon")
	b.LHS("S").Epsilon()
	return mustGrammar(t, b)
}

// S ::= S a | a
func leftRecursiveGrammar(t *testing.T) *cfg.Grammar {
	b := cfg.NewGrammarBuilder("leftrec")
	b.LHS("S").N("S").T("a").End()
	b.LHS("S").T("a").End()
	return mustGrammar(t, b)
}

// E ::= E E | a
func ambiguousGrammar(t *testing.T) *cfg.Grammar {
	b := cfg.NewGrammarBuilder("ambiguous")
	b.LHS("E").N("E").N("E").End()
	b.LHS("E").T("a").End()
	return mustGrammar(t, b)
}

// S ::= A S b | b ,  A ::= a | ε
func mixedGrammar(t *testing.T) *cfg.Grammar {
	b := cfg.NewGrammarBuilder("mixed")
	b.LHS("S").N("A").N("S").T("b").End()
	b.LHS("S").T("b").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	return mustGrammar(t, b)
}

func mustGrammar(t *testing.T, b *cfg.GrammarBuilder) *cfg.Grammar {
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("could not build grammar: %v", err)
	}
	return g
}
