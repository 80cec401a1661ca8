package ast

// Type is the syntactic position of a type annotation (`x: T`). The
// grammar does not give annotations their own node kind — spec.md §4.G
// says annotations are converted by "a Type Annotation Converter that
// maps syntactic annotation names to Types via scope lookup", and that
// an index expression in annotation position (`List[int]`) flows through
// the ordinary generic-parameterization path. So a Type is just an
// Expression evaluated in a special context; this alias documents that
// intent at call sites without introducing a parallel node hierarchy.
type Type = Expression
