// Package typeexpr models declared types of a documented callable.
//
// An [Expr] describes a type without committing to any concrete type system.
// It is produced by an external introspection facility and consumed by the
// documentation compiler, which turns it into prose such as "int or None",
// "sequence of str" or "{'xxx', 'yyy'}".
//
// Forward references must be resolved to their display names and documentation
// hints extracted into [Annotated] before an expression is handed over.
package typeexpr
