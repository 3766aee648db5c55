package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
	"github.com/npillmayer/cds/check"
	"github.com/npillmayer/cds/engine"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() runs a CDS parse: cdsparse [flags] <grammar-file> <input>.
//
// The grammar file holds one production per line as whitespace-separated
// tokens, the first token being the LHS; the first LHS is the start symbol.
// The second argument either names a file with whitespace-separated input
// symbols or is the input sentence itself. On success a single CSV data line
// is written to stdout. With -i, input sentences are read interactively
// instead.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	engname := flag.String("engine", "pool", "Engine [seq|pool|tree]")
	workers := flag.Int("workers", 16, "Worker count of the pool engine")
	threshold := flag.Int("threshold", 32, "Spawn threshold of the tree engine")
	data := flag.String("data", "csv", "Data line [csv|actions|hist]")
	doCheck := flag.Bool("check", false, "Validate the output sets")
	doPrint := flag.Bool("print", false, "Print the output sets")
	doAccept := flag.Bool("accept", false, "Report whether the input was recognized")
	interactive := flag.Bool("i", false, "Read input sentences interactively")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracing.Select("cds.engine").SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	tracing.Select("cds.cfg").SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	//
	args := flag.Args()
	if len(args) < 1 {
		pterm.Error.Println("missing arguments 'grammar_file' and 'input_file/input_string'")
		os.Exit(1)
	}
	if len(args) < 2 && !*interactive {
		pterm.Error.Println("missing argument 'input_file/input_string'")
		os.Exit(1)
	}
	g, err := cfg.LoadGrammar(args[0])
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	g.Dump() // only visible in debug mode
	eng := makeEngine(*engname, g, *workers, *threshold)
	//
	if *interactive {
		repl(eng, g, *data, *doCheck, *doPrint)
		return
	}
	input := cfg.ReadInput(args[1])
	result := eng.Parse(input)
	fmt.Println(dataLine(result, *data))
	if *doAccept {
		reportAccept(result, g)
	}
	if *doPrint {
		printResult(result)
	}
	if *doCheck {
		validateResult(result, g, input)
	}
}

func makeEngine(name string, g *cfg.Grammar, workers, threshold int) engine.Engine {
	switch name {
	case "seq":
		return engine.NewSequential(g)
	case "tree":
		return engine.NewTree(g, engine.SpawnThreshold(threshold))
	default:
		return engine.NewPool(g, engine.Workers(workers))
	}
}

func dataLine(result *engine.Result, mode string) string {
	switch mode {
	case "actions":
		return result.ActionsCSV()
	case "hist":
		return result.HistogramCSV()
	default:
		return result.CSV()
	}
}

func reportAccept(result *engine.Result, g *cfg.Grammar) {
	if result.Accepted(g) {
		pterm.Info.Println("input recognized")
	} else {
		pterm.Error.Println("input not recognized")
	}
}

// printResult dumps the EPNs and descriptors of a parse.
func printResult(result *engine.Result) {
	pterm.Info.Println("EPNs:")
	for _, pn := range result.EPNs.Values() {
		fmt.Println(pn)
	}
	pterm.Info.Println("Descriptors:")
	for _, d := range result.Descriptors.Values() {
		fmt.Println(d)
	}
}

// validateResult checks the output sets against the CDS requirements.
func validateResult(result *engine.Result, g *cfg.Grammar, input []cds.Symbol) {
	report := check.Validate(result.Descriptors, result.EPNs, g, input)
	if report.OK() {
		fmt.Println("Output is correct.")
		return
	}
	report.Print(os.Stdout)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// repl reads input sentences interactively and parses each against the
// loaded grammar.
func repl(eng engine.Engine, g *cfg.Grammar, data string, doCheck, doPrint bool) {
	rl, err := readline.New("cds> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	pterm.Info.Println("Enter one input sentence per line, quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		input := cds.InputFromString(line)
		result := eng.Parse(input)
		fmt.Println(dataLine(result, data))
		reportAccept(result, g)
		if doPrint {
			printResult(result)
		}
		if doCheck {
			validateResult(result, g, input)
		}
	}
	println("Good bye!")
}
