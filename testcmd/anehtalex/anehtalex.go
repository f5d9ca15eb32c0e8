package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anehta-lang/anehta/lexer"
	"github.com/anehta-lang/anehta/report"
	"github.com/anehta-lang/anehta/source"
	"github.com/anehta-lang/anehta/token"
)

var help = flag.Bool("help", false, "display help")

func main() {
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	name, input, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := lexer.New(name, strings.NewReader(input))
	for {
		t, err := l.Next()
		if err != nil {
			reportError(name, input, err)
			os.Exit(1)
		}

		fmt.Printf(
			"LINE: %4d POS: %4d TYPE: %-14s %q\n",
			t.Line,
			t.Column,
			t.Type,
			t.Value,
		)

		if t.Type == token.Eof {
			return
		}
	}
}

func readInput(path string) (string, string, error) {
	if path == "" {
		bs, err := io.ReadAll(os.Stdin)
		return "stdin", string(bs), err
	}

	bs, err := os.ReadFile(path)
	return path, string(bs), err
}

func reportError(name, input string, err error) {
	lexErr, ok := err.(*lexer.LexError)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	loader := source.NewMemLoader()
	loader.Add(name, input)
	cm := source.NewCodeMap(loader)
	if err := cm.Add(name); err != nil {
		fmt.Fprintln(os.Stderr, lexErr)
		return
	}

	r := report.NewReporter(cm, report.Stderr(true, true))
	r.Report(name, report.NewLexError(lexErr))
	if err := r.Emit(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

const helpText = `Display a list of tokens with their properties

usage: anehtalex /path/to/file.anehta
       anehtalex < /path/to/file.anehta

To enter lines interactively use: cat | anehtalex`

func printUsage() {
	fmt.Println(helpText)
}
