// Package xerrors holds the typed error categories used across parsekit.
//
// Three categories: user-input errors (GrammarError for a malformed grammar
// source, TokenError for an input token outside a grammar's terminal set),
// build-time conflicts (never an error, see the table package — a grammar
// with conflicts still builds a table, just a non-conflict-free one), and
// driver-level failures. An ordinary rejection of the input is not an error
// at all — it is a Trace ending in an Error step with Result.Accepted
// false — but a ParseError is still returned for an abnormal abort (the
// step-budget guard), and a TokenError for a token the driver cannot even
// look up in the grammar's terminal set.
package xerrors

import "fmt"

// GrammarError reports a problem found while reading a textual grammar.
type GrammarError struct {
	Line   int    // 1-based source line, 0 if not line-specific
	Text   string // the offending source text, if any
	Reason string
}

func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("grammar: line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("grammar: %s", e.Reason)
}

// TokenError reports an input token that does not name a terminal of the
// grammar being parsed against.
type TokenError struct {
	Token  string
	Reason string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %q: %s", e.Token, e.Reason)
}

// ParseError reports a driver-level failure that is not an ordinary
// rejection of the input (those are reported via an Error trace step
// instead) — currently only the step-budget guard.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse aborted: %s", e.Reason)
}
