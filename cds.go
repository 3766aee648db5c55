package cds

import "strings"

// --- Symbols ----------------------------------------------------------------

// Symbol is a grammar symbol. Symbols are opaque non-empty strings; whether a
// symbol is a terminal or a nonterminal is not a property of the symbol
// itself, but of the grammar which contains it (see package cfg).
type Symbol string

// InputFromString splits a whitespace-separated sentence into input symbols.
// Empty input is legal and yields a nil slice.
func InputFromString(s string) []Symbol {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	input := make([]Symbol, len(fields))
	for i, f := range fields {
		input[i] = Symbol(f)
	}
	return input
}

// InputString joins input symbols into a whitespace-separated sentence,
// inverse to InputFromString.
func InputString(input []Symbol) string {
	var b strings.Builder
	for i, sym := range input {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(sym))
	}
	return b.String()
}

// slotString formats a dotted grammar slot as "S ::= a • b".
// The dot is printed in front of the symbol at the dot position; a completed
// slot has the dot at the very end.
func slotString(lhs Symbol, rhs []Symbol, dot int) string {
	var b strings.Builder
	b.WriteString(string(lhs))
	b.WriteString(" ::=")
	for i, sym := range rhs {
		if i == dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(string(sym))
	}
	if dot == len(rhs) {
		b.WriteString(" •")
	}
	return b.String()
}
