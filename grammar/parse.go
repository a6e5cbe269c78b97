package grammar

import (
	"strings"

	"github.com/kjhall/parsekit/internal/xerrors"
)

// arrows are tried in this order so "::=" is never mis-split on a bare "=".
var arrows = []string{"::=", "->", "→"}

// ParseString parses the textual grammar format: one rule per line,
// `LHS -> α₁ | α₂ | … | αₙ`, arrow tokens `->`, `→`, `::=`; an alternative
// that is empty or is the literal epsilon marker (`ε` or `epsilon`) denotes
// an ε-production; lines that are empty or start with `#` are ignored. The
// LHS of the first rule encountered is the grammar's start symbol.
func ParseString(text string) (*Grammar, []Warning, error) {
	var rules []RawRule

	for lineNo, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lhs, rhsPart, ok := splitArrow(line)
		if !ok {
			return nil, nil, &xerrors.GrammarError{
				Line: lineNo + 1, Text: rawLine,
				Reason: "missing arrow token (->, →, or ::=)",
			}
		}
		lhs = strings.TrimSpace(lhs)
		if lhs == "" {
			return nil, nil, &xerrors.GrammarError{
				Line: lineNo + 1, Text: rawLine,
				Reason: "empty left-hand side",
			}
		}

		for _, alt := range strings.Split(rhsPart, "|") {
			alt = strings.TrimSpace(alt)
			rules = append(rules, RawRule{LHS: lhs, RHS: splitRHS(alt)})
		}
	}

	if len(rules) == 0 {
		return nil, nil, &xerrors.GrammarError{Reason: "no productions found"}
	}

	return New(rules)
}

func splitArrow(line string) (lhs, rhs string, ok bool) {
	for _, a := range arrows {
		if idx := strings.Index(line, a); idx >= 0 {
			return line[:idx], line[idx+len(a):], true
		}
	}
	return "", "", false
}

func splitRHS(alt string) []string {
	if alt == "" || alt == "ε" || strings.EqualFold(alt, "epsilon") {
		return nil
	}
	return strings.Fields(alt)
}
