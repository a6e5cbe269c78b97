package main

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/kjhall/parsekit/compare"
	"github.com/kjhall/parsekit/driver"
	"github.com/kjhall/parsekit/table"
	"github.com/kjhall/parsekit/transform"
)

// dispatch runs one command line. It returns true when the session should
// end (the :quit command).
func (s *session) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	if !strings.HasPrefix(cmd, ":") {
		pterm.Error.Println("unknown input; commands start with ':' (try :help)")
		return false
	}

	switch cmd {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		printHelp()
	case ":grammar", ":g":
		s.cmdGrammar()
	case ":load":
		if len(args) != 1 {
			pterm.Error.Println("usage: :load <file>")
			return false
		}
		if err := s.loadFile(args[0]); err != nil {
			pterm.Error.Println(err.Error())
		}
	case ":transform":
		s.cmdTransform()
	case ":compare":
		s.cmdCompare()
	case ":table":
		if len(args) != 1 {
			pterm.Error.Println("usage: :table <ll1|slr|clr|lalr>")
			return false
		}
		s.cmdTable(args[0])
	case ":parse":
		if len(args) < 2 {
			pterm.Error.Println("usage: :parse <ll1|slr|clr|lalr> <tok> [tok...]")
			return false
		}
		s.cmdParse(args[0], args[1:])
	default:
		pterm.Error.Printf("unknown command %q (try :help)\n", cmd)
	}
	return false
}

func printHelp() {
	pterm.Println(strings.TrimSpace(`
:load <file>             load a grammar file
:grammar                 print the currently loaded grammar
:transform                apply left-recursion elimination and left factoring, print what changed
:compare                  build all four tables concurrently and recommend one
:table <flavor>           build and print one of ll1, slr, clr, lalr
:parse <flavor> <tokens>  drive a parse over a sequence of terminal names, print its trace and tree
:quit                     leave parsekit
`))
}

func (s *session) requireGrammar() bool {
	if s.g == nil {
		pterm.Error.Println("no grammar loaded; use :load")
		return false
	}
	return true
}

func (s *session) cmdGrammar() {
	if !s.requireGrammar() {
		return
	}
	pterm.Println(s.g.String())
}

func (s *session) cmdTransform() {
	if !s.requireGrammar() {
		return
	}
	res, err := transform.ForLL1(s.g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	s.xform = res
	if len(res.Applied) == 0 {
		pterm.Info.Println("no transformation was necessary")
	}
	for _, step := range res.Applied {
		pterm.Info.Println(step)
	}
	pterm.Println(res.Transformed.String())
}

func (s *session) cmdCompare() {
	if !s.requireGrammar() {
		return
	}
	report := compare.CompareAll(s.g, compare.DefaultPolicy())
	s.report = report
	renderCompareTable(report)
	if report.HasRecommended {
		pterm.Success.Println(report.Recommendation)
	} else {
		pterm.Error.Println(report.Recommendation)
	}
}

func (s *session) cmdTable(flavor string) {
	if !s.requireGrammar() {
		return
	}
	switch strings.ToLower(flavor) {
	case "ll1":
		g := s.g
		if res, err := transform.ForLL1(s.g); err == nil {
			g = res.Transformed
		}
		renderLL1Table(table.BuildLL1(g))
	case "slr":
		renderLRTable(table.BuildSLR1(s.g))
	case "clr":
		renderLRTable(table.BuildCLR1(s.g))
	case "lalr":
		renderLRTable(table.BuildLALR1(s.g))
	default:
		pterm.Error.Printf("unknown flavor %q (want ll1, slr, clr, or lalr)\n", flavor)
	}
}

func (s *session) cmdParse(flavor string, tokens []string) {
	if !s.requireGrammar() {
		return
	}
	lx, err := newTokenLexer(s.g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	toks, lerr := lx.Tokenize(strings.Join(tokens, " "), func(e error) {
		pterm.Warning.Println(e.Error())
	})
	if lerr != nil {
		pterm.Error.Println(lerr.Error())
		return
	}

	var res *driver.Result
	switch strings.ToLower(flavor) {
	case "ll1":
		g := s.g
		if r, terr := transform.ForLL1(s.g); terr == nil {
			g = r.Transformed
		}
		res, err = driver.ParseLL1(table.BuildLL1(g), toks, driver.Options{})
	case "slr":
		res, err = driver.ParseLR(table.BuildSLR1(s.g), toks, driver.Options{})
	case "clr":
		res, err = driver.ParseLR(table.BuildCLR1(s.g), toks, driver.Options{})
	case "lalr":
		res, err = driver.ParseLR(table.BuildLALR1(s.g), toks, driver.Options{})
	default:
		pterm.Error.Printf("unknown flavor %q (want ll1, slr, clr, or lalr)\n", flavor)
		return
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	renderTrace(res)
	if res.Accepted {
		pterm.Success.Println("accepted")
		renderTree(res.Tree)
	} else {
		pterm.Error.Println("rejected")
	}
}
