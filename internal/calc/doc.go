// Package calc maps operation names to evaluators over bigint values. It is
// the single dispatch point shared by the eval command, the REPL and the
// prime tools: every entry declares its arity and usage, and Eval enforces
// the arity, times the call and wraps engine errors with the operation name.
package calc
