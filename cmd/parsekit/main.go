// Command parsekit is an interactive shell for loading a grammar, building
// any of its four parsing tables, comparing them, and driving a parse with
// a full step trace — modeled on gorgo's trepl REPL (readline input loop,
// pterm-rendered output, a line-oriented command dispatch).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/tracing"

	"github.com/kjhall/parsekit/compare"
	"github.com/kjhall/parsekit/grammar"
	"github.com/kjhall/parsekit/transform"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.cmd") }

// defaultGrammar is loaded at startup so a user can start experimenting
// without first typing :load.
const defaultGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " info",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Success.Prefix = pterm.Prefix{
		Text:  " ok",
		Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	tlevel := flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "path to a grammar file to load at startup")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	pterm.Info.Println("parsekit: LL(1)/SLR(1)/CLR(1)/LALR(1) table construction and parse simulation")

	sess := newSession()
	if *gfile != "" {
		if err := sess.loadFile(*gfile); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	} else {
		if err := sess.loadText("(builtin)", defaultGrammar); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}

	repl, err := readline.New("parsekit> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	pterm.Info.Println("type :help for a list of commands, Ctrl-D to quit")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on Ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := sess.dispatch(line); quit {
			break
		}
	}
	fmt.Println("bye")
}

// session holds everything a command needs to refer back to: the currently
// loaded grammar, the most recent transformation and the most recent
// comparison report. :parse and :table build their own tables each time and
// do not reuse the ones :compare built.
type session struct {
	source string
	g      *grammar.Grammar
	xform  *transform.Result
	report *compare.Report
}

func newSession() *session { return &session{} }

func (s *session) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return s.loadText(path, string(data))
}

func (s *session) loadText(source, text string) error {
	g, warnings, err := grammar.ParseString(text)
	if err != nil {
		return fmt.Errorf("parsing grammar: %w", err)
	}
	for _, w := range warnings {
		pterm.Warning.Println(w.String())
	}
	s.source = source
	s.g = g
	s.report = nil
	s.xform = nil
	pterm.Success.Printf("loaded grammar from %s (%d productions, start=%s)\n", source, len(g.Productions), g.Start.Name)
	return nil
}
