package cfg

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/cds"
)

// Errors returned by grammar construction. Engines never see these; a
// rejected operation leaves the grammar unchanged and construction continues.
var (
	// ErrSymbolClass flags an attempt to classify a symbol into a class it
	// already occupies in the opposite class.
	ErrSymbolClass = errors.New("symbol already classified in the opposite class")
	// ErrEmptySymbol flags an attempt to use the empty string as a symbol.
	ErrEmptySymbol = errors.New("grammar symbols must be non-empty")
	// ErrNoStartSymbol flags a grammar without a start symbol.
	ErrNoStartSymbol = errors.New("grammar has no start symbol")
)

// Rule is a single production of a grammar. Rules are immutable after
// insertion; Serial is the insertion position within the grammar.
type Rule struct {
	Serial int
	LHS    cds.Symbol
	RHS    []cds.Symbol
}

func (r Rule) String() string {
	return fmt.Sprintf("%v ::= %v", r.LHS, r.RHS)
}

// Grammar is a context-free grammar: two disjoint symbol classes, a
// multi-mapping from nonterminal LHS to RHS sequences, and a start symbol.
// Duplicate rules with identical RHS are preserved; the engines treat them
// idempotently through set semantics downstream.
//
// Grammars are not safe for mutation while a parse is running; engines only
// read them.
type Grammar struct {
	Name         string
	terminals    *treeset.Set
	nonterminals *treeset.Set
	rules        map[cds.Symbol]*arraylist.List // LHS -> []Rule
	order        *arraylist.List                // all rules by serial
	start        cds.Symbol
	hasStart     bool
}

// NewGrammar creates an empty grammar with a given name. The name is used
// for trace output only.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:         name,
		terminals:    treeset.NewWith(utils.StringComparator),
		nonterminals: treeset.NewWith(utils.StringComparator),
		rules:        make(map[cds.Symbol]*arraylist.List),
		order:        arraylist.New(),
	}
}

// AddTerminal puts a symbol into the terminal class. It fails with
// ErrSymbolClass if the symbol is already a nonterminal; re-adding a known
// terminal is a no-op.
func (g *Grammar) AddTerminal(sym cds.Symbol) error {
	if sym == "" {
		return ErrEmptySymbol
	}
	if g.nonterminals.Contains(string(sym)) {
		return fmt.Errorf("invalid terminal symbol '%s': %w", sym, ErrSymbolClass)
	}
	g.terminals.Add(string(sym))
	return nil
}

// AddNonterminal puts a symbol into the nonterminal class. It fails with
// ErrSymbolClass if the symbol is already a terminal; re-adding a known
// nonterminal is a no-op.
func (g *Grammar) AddNonterminal(sym cds.Symbol) error {
	if sym == "" {
		return ErrEmptySymbol
	}
	if g.terminals.Contains(string(sym)) {
		return fmt.Errorf("invalid nonterminal symbol '%s': %w", sym, ErrSymbolClass)
	}
	g.nonterminals.Add(string(sym))
	return nil
}

// SetStartSymbol makes sym the start symbol. sym must be a nonterminal.
func (g *Grammar) SetStartSymbol(sym cds.Symbol) error {
	if !g.nonterminals.Contains(string(sym)) {
		return fmt.Errorf("start symbol '%s' is not a nonterminal", sym)
	}
	g.start = sym
	g.hasStart = true
	return nil
}

// StartSymbol returns the start symbol, or "" if none has been set.
func (g *Grammar) StartSymbol() cds.Symbol { return g.start }

// HasStartSymbol is true iff a start symbol has been set.
func (g *Grammar) HasStartSymbol() bool { return g.hasStart }

// AddRule appends a production lhs ::= rhs. The LHS is classified as a
// nonterminal; the first LHS ever added becomes the start symbol. Duplicate
// rules are preserved.
func (g *Grammar) AddRule(lhs cds.Symbol, rhs []cds.Symbol) error {
	if err := g.AddNonterminal(lhs); err != nil {
		return err
	}
	if !g.hasStart {
		if err := g.SetStartSymbol(lhs); err != nil {
			return err
		}
	}
	r := Rule{Serial: g.order.Size(), LHS: lhs, RHS: rhs}
	list, ok := g.rules[lhs]
	if !ok {
		list = arraylist.New()
		g.rules[lhs] = list
	}
	list.Add(r)
	g.order.Add(r)
	return nil
}

// Finalize classifies every RHS symbol without a defining rule as a
// terminal. It is idempotent and must run before parsing begins.
func (g *Grammar) Finalize() {
	g.EachRule(func(r Rule) {
		for _, sym := range r.RHS {
			if _, defined := g.rules[sym]; !defined && !g.terminals.Contains(string(sym)) {
				if err := g.AddTerminal(sym); err != nil {
					tracer().Errorf("cannot promote '%s' to terminal: %v", sym, err)
				}
			}
		}
	})
}

// IsTerminal reports whether sym is in the terminal class.
func (g *Grammar) IsTerminal(sym cds.Symbol) bool {
	return g.terminals.Contains(string(sym))
}

// IsNonterminal reports whether sym is in the nonterminal class.
func (g *Grammar) IsNonterminal(sym cds.Symbol) bool {
	return g.nonterminals.Contains(string(sym))
}

// Terminals returns the terminal symbols in lexicographic order.
func (g *Grammar) Terminals() []cds.Symbol { return symbols(g.terminals) }

// Nonterminals returns the nonterminal symbols in lexicographic order.
func (g *Grammar) Nonterminals() []cds.Symbol { return symbols(g.nonterminals) }

func symbols(set *treeset.Set) []cds.Symbol {
	syms := make([]cds.Symbol, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		syms = append(syms, cds.Symbol(it.Value().(string)))
	}
	return syms
}

// RulesFor returns all productions with the given LHS, in insertion order.
// For terminals and unknown symbols the result is empty.
func (g *Grammar) RulesFor(lhs cds.Symbol) []Rule {
	list, ok := g.rules[lhs]
	if !ok {
		return nil
	}
	rules := make([]Rule, 0, list.Size())
	it := list.Iterator()
	for it.Next() {
		rules = append(rules, it.Value().(Rule))
	}
	return rules
}

// Rule returns the production with serial number n.
func (g *Grammar) Rule(n int) Rule {
	r, _ := g.order.Get(n)
	return r.(Rule)
}

// RuleCount returns the number of productions.
func (g *Grammar) RuleCount() int { return g.order.Size() }

// EachRule calls f for every production, in insertion order.
func (g *Grammar) EachRule(f func(Rule)) {
	it := g.order.Iterator()
	for it.Next() {
		f(it.Value().(Rule))
	}
}

// Dump logs the grammar. Dump is a debugging helper; output is only visible
// with trace level Debug.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ----------", g.Name)
	tracer().Debugf("start symbol: %s", g.start)
	tracer().Debugf("terminals:    %v", g.Terminals())
	tracer().Debugf("nonterminals: %v", g.Nonterminals())
	g.EachRule(func(r Rule) {
		tracer().Debugf("%2d: %s", r.Serial, r)
	})
	tracer().Debugf("-------------------------")
}
