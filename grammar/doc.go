// Package grammar implements the core representation of a context-free
// grammar: symbols, productions and the grammar itself, parsing of the
// textual rule format, augmentation for LR construction, and pretty
// printing.
//
// Grammars are created once from text (or programmatically) and never
// mutated afterwards; augmentation and transformation both produce fresh
// Grammar values with their own, densely-numbered production id space.
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsekit.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("parsekit.grammar")
}
