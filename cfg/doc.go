/*
Package cfg implements context-free grammars for CDS parsing.

Grammars partition their symbols into terminals and nonterminals and hold a
multi-mapping from nonterminal left-hand sides to right-hand side sequences.
Clients either construct grammars with a builder object,

    b := cfg.NewGrammarBuilder("G")
    b.LHS("S").N("S").T("a").End()   // S  ->  S a
    b.LHS("S").T("a").End()          // S  ->  a
    g, err := b.Grammar()

or read them from a line-oriented text format with ReadGrammar/LoadGrammar,
where every line holds one production as whitespace-separated tokens, the
first token being the LHS. Any RHS symbol without a defining rule is
classified as a terminal when the grammar is finalized.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cds.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("cds.cfg")
}
