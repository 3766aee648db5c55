package cfg

import (
	"github.com/npillmayer/cds"
)

// GrammarBuilder is a builder object for grammars. Clients start a production
// with LHS(...), append RHS symbols with N(...) and T(...), and close it with
// End() or Epsilon(). Errors during construction are collected and returned
// by Grammar(); the offending operation is rejected and building continues.
type GrammarBuilder struct {
	g   *Grammar
	err error
}

// NewGrammarBuilder creates a builder for a grammar with the given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: NewGrammar(name)}
}

// LHS starts a new production for a nonterminal.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: cds.Symbol(name)}
}

// Grammar finalizes and returns the grammar built so far, together with the
// first error encountered during construction.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if !gb.g.hasStart {
		return gb.g, ErrNoStartSymbol
	}
	gb.g.Finalize()
	return gb.g, gb.err
}

func (gb *GrammarBuilder) appendRule(lhs cds.Symbol, rhs []cds.Symbol) {
	if err := gb.g.AddRule(lhs, rhs); err != nil {
		tracer().Errorf("grammar builder: %v", err)
		if gb.err == nil {
			gb.err = err
		}
	}
}

// RuleBuilder is a builder type for a single production rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs cds.Symbol
	rhs []cds.Symbol
}

// N appends a nonterminal symbol to the RHS under construction.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, cds.Symbol(name))
	return rb
}

// T appends a terminal symbol to the RHS under construction and declares it
// as a terminal of the grammar.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	if err := rb.gb.g.AddTerminal(cds.Symbol(name)); err != nil {
		tracer().Errorf("grammar builder: %v", err)
		if rb.gb.err == nil {
			rb.gb.err = err
		}
	}
	rb.rhs = append(rb.rhs, cds.Symbol(name))
	return rb
}

// End closes the production and hands it to the grammar.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.gb.appendRule(rb.lhs, rb.rhs)
	return rb.gb
}

// Epsilon closes the production with an empty RHS.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.gb.appendRule(rb.lhs, nil)
	return rb.gb
}
