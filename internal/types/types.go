/*
File   : cfront/internal/types/types.go
Package types names the built-in type vocabulary shared by the scope
analyzer and the type checker.
*/

// Package types holds the closed set of built-in type names the
// checked language supports, and the numeric-widening rule the type
// checker applies to binary operators, assignments, declarations,
// returns, and call arguments. Adapted from go-mix's objects.GoMixType
// pattern (a named string constant set) for this front-end's much
// smaller, source-level type vocabulary.
package types

// Name is a resolved type: one of the seven built-ins below, or "auto"
// for a declaration written with that specifier (the type checker does
// not infer a concrete type for auto). There are no user-defined types
// in this language.
type Name = string

const (
	Void   Name = "void"
	Char   Name = "char"
	Int    Name = "int"
	Float  Name = "float"
	Double Name = "double"
	Bool   Name = "bool"
	String Name = "string"
)

// IsNumeric reports whether t is one of the four arithmetic types.
func IsNumeric(t string) bool {
	return t == Int || t == Float || t == Double || t == Char
}

// IsInteger reports whether t is one of the two integer types.
func IsInteger(t string) bool {
	return t == Int || t == Char
}

// Wider returns the result type of combining two numeric types:
// double beats float beats int, per spec.md's widening table. Callers
// must check IsNumeric(t1) && IsNumeric(t2) first.
func Wider(t1, t2 string) string {
	if t1 == Double || t2 == Double {
		return Double
	}
	if t1 == Float || t2 == Float {
		return Float
	}
	return Int
}
