package cfg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/cds"
)

// ReadGrammar reads a grammar from a line-oriented text format: one
// production per line as whitespace-separated tokens, the first token being
// the LHS nonterminal and the remaining tokens (possibly none) the RHS. A
// line without tokens terminates the grammar. The first LHS encountered
// becomes the start symbol; RHS tokens that never appear as an LHS are
// classified as terminals.
//
// Construction errors on single lines are reported and the line is skipped;
// reading continues.
func ReadGrammar(name string, r io.Reader) (*Grammar, error) {
	g := NewGrammar(name)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			break
		}
		var rhs []cds.Symbol // stays nil for ε-productions
		for _, tok := range fields[1:] {
			rhs = append(rhs, cds.Symbol(tok))
		}
		if err := g.AddRule(cds.Symbol(fields[0]), rhs); err != nil {
			tracer().Errorf("grammar line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return g, fmt.Errorf("error reading grammar: %w", err)
	}
	if !g.hasStart {
		return g, ErrNoStartSymbol
	}
	g.Finalize()
	return g, nil
}

// LoadGrammar reads a grammar from a file. The grammar is named after the
// file's base name.
func LoadGrammar(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file '%s': %w", path, err)
	}
	defer f.Close()
	return ReadGrammar(filepath.Base(path), f)
}

// ReadInput produces an input sentence from a command line argument: if the
// argument names an openable file, the whitespace-separated tokens of that
// file; otherwise the tokens of the argument string itself.
func ReadInput(arg string) []cds.Symbol {
	f, err := os.Open(arg)
	if err != nil {
		return cds.InputFromString(arg)
	}
	defer f.Close()
	var input []cds.Symbol
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		input = append(input, cds.Symbol(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("error reading input file '%s': %v", arg, err)
	}
	return input
}
