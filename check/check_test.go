package check

import (
	"bytes"
	"testing"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
	"github.com/npillmayer/cds/engine"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func exprGrammar(t *testing.T) *cfg.Grammar {
	b := cfg.NewGrammarBuilder("expr")
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("could not build grammar: %v", err)
	}
	return g
}

func TestValidOutputPasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.check")
	defer teardown()
	//
	g := exprGrammar(t)
	input := cds.InputFromString("a + a + a")
	result := engine.NewSequential(g).Parse(input)
	report := Validate(result.Descriptors, result.EPNs, g, input)
	if !report.OK() {
		var buf bytes.Buffer
		report.Print(&buf)
		t.Errorf("valid engine output flagged:\n%s", buf.String())
	}
}

func TestValidParallelOutputPasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.check")
	defer teardown()
	//
	g := exprGrammar(t)
	input := cds.InputFromString("a + a")
	for _, eng := range []engine.Engine{engine.NewPool(g), engine.NewTree(g)} {
		result := eng.Parse(input)
		if report := Validate(result.Descriptors, result.EPNs, g, input); !report.OK() {
			t.Errorf("valid parallel output flagged: %d descriptors, %d EPNs missing",
				len(report.MissingDescriptors), len(report.MissingEPNs))
		}
	}
}

func TestMissingDescriptorIsFlagged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.check")
	defer teardown()
	//
	g := exprGrammar(t)
	input := cds.InputFromString("a")
	result := engine.NewSequential(g).Parse(input)
	spanning := cds.MakeDescriptor("E", []cds.Symbol{"a"}, 1, 0, 1)
	if !result.Descriptors.Remove(spanning) {
		t.Fatalf("expected %v in the output", spanning)
	}
	report := Validate(result.Descriptors, result.EPNs, g, input)
	if report.OK() {
		t.Errorf("removing %v must violate R(2)", spanning)
	}
	if len(report.MissingDescriptors) == 0 {
		t.Errorf("expected a missing-descriptor finding")
	}
}

func TestMissingEPNIsFlagged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.check")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("eps")
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	result := engine.NewSequential(g).Parse(nil)
	// Validate against an empty E; the zero-width node for S ::= ε is gone.
	report := Validate(result.Descriptors, cds.NewEPNSet(), g, nil)
	if report.OK() || len(report.MissingEPNs) == 0 {
		t.Errorf("dropping the zero-width EPN must violate P(3)")
	}
}

func TestCheckerDoesNotMutate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cds.check")
	defer teardown()
	//
	g := exprGrammar(t)
	input := cds.InputFromString("a + a")
	result := engine.NewSequential(g).Parse(input)
	sizeS, sizeE := result.Descriptors.Size(), result.EPNs.Size()
	Validate(result.Descriptors, result.EPNs, g, input)
	if result.Descriptors.Size() != sizeS || result.EPNs.Size() != sizeE {
		t.Errorf("the checker is advisory and must not mutate the sets")
	}
}
