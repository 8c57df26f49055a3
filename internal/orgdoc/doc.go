// Package orgdoc provides the structural document model the argument and
// transclusion engines operate on. Its core purpose is to turn raw org text
// into a traversable Go representation: headlines with property drawers,
// blocks with their begin/end delimiters, the `#+header:` declaration lines
// attached to each block, and file-level property keywords.
//
// Why a separate document package?
//
// Everything above this layer is format-agnostic. The declaration grammar,
// the precedence rules, and the link construction pipeline never look at raw
// org text directly; they consume Blocks and Spans handed out here. Keeping
// the line-oriented scanning in one place means offset arithmetic after an
// edit is isolated to a single Reindex step instead of being scattered
// through every caller that holds a span.
//
// The Document also owns the backing text. Mutations go through Replace,
// Insert and Delete, each of which returns the Edit it applied so that spans
// held outside the document (argument locations, mostly) can be reindexed by
// their owners.
package orgdoc
