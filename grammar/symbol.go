package grammar

// Kind distinguishes terminal and nonterminal symbols.
type Kind int

const (
	Terminal Kind = iota
	Nonterminal
)

func (k Kind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "nonterminal"
}

// Symbol is a grammar symbol: a name paired with a kind. Value is a dense,
// per-grammar, per-kind index (0-based, assigned at grammar construction)
// used only for table/matrix indexing; symbol identity is always by Name
// and Kind, never by Value.
type Symbol struct {
	Name  string
	Kind  Kind
	Value int
}

// IsTerminal reports whether s is a terminal symbol.
func (s Symbol) IsTerminal() bool { return s.Kind == Terminal }

// IsNonterminal reports whether s is a nonterminal symbol.
func (s Symbol) IsNonterminal() bool { return s.Kind == Nonterminal }

func (s Symbol) String() string { return s.Name }

// EndOfInput is the distinguished end-marker terminal, '$'.
var EndOfInput = Symbol{Name: "$", Kind: Terminal}

// Epsilon is the pseudo-terminal denoting the empty string. It never
// appears literally in a production's RHS (an epsilon production is
// represented as an empty RHS slice); it is used only as a sentinel
// member of FIRST sets during fixed-point computation.
var Epsilon = Symbol{Name: "ε", Kind: Terminal}

// key returns a map key unambiguous across terminal/nonterminal name clashes
// (which the grammar format permits to fail gracefully, never silently).
func (s Symbol) key() string {
	if s.Kind == Terminal {
		return "t:" + s.Name
	}
	return "n:" + s.Name
}
