// Package domain defines core business entities and value objects for pls.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

// DocSource identifies which documentation source a tool record was derived
// from. Sources are ranked: tldr examples beat manual pages beat help output.
type DocSource string

const (
	SourceTldr     DocSource = "tldr"
	SourceMan      DocSource = "man"
	SourceHelp     DocSource = "help"
	SourceInferred DocSource = "inferred"
)

// Tool is one indexed command-line tool. Records are created wholesale by the
// catalog builder and are read-only everywhere else.
type Tool struct {
	Name        string
	Path        string
	Description string
	Synopsis    string
	Flags       string
	Examples    string
	Source      DocSource
	Embedding   []float32
}

// Retrievable reports whether the record can participate in similarity
// ranking. Tools without an embedding are excluded from retrieval.
func (t Tool) Retrievable() bool {
	return len(t.Embedding) > 0
}
