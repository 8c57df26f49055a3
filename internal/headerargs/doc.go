// Package headerargs resolves and mutates named block arguments that may be
// declared redundantly in up to three ranked locations: `#+header:` lines
// above a block, inline `:name value` tokens on the begin delimiter line, and
// a `header-args` property inherited from the nearest enclosing headline or
// the file preamble.
//
// Why rank the locations?
//
// The same argument can legitimately appear at every site at once. Reads must
// be deterministic, so each source kind carries a fixed precedence: header
// lines beat inline parameters, which beat the inherited property. Writes
// always target the highest-precedence declaration that exists, and the
// inherited kind is never writable because it belongs to an ancestor, not to
// the block.
//
// The declaration-line grammar is parsed in exactly one place
// (ParseDeclarations and the argument scanner behind it); everything
// downstream works on ParamSet values and never touches raw org text.
package headerargs
