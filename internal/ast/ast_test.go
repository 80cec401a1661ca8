package ast

import (
	"testing"

	"github.com/kestrel-lang/kestrel/internal/token"
)

func TestFunctionDefHasDecorator(t *testing.T) {
	fn := &FunctionDef{
		Name: NewIdentifier(token.Span{}, "p"),
		Decorators: []Decorator{
			{Expression: NewIdentifier(token.Span{}, "overload")},
		},
	}
	if !fn.HasDecorator("overload") {
		t.Fatalf("expected HasDecorator(overload) to be true")
	}
	if fn.HasDecorator("staticmethod") {
		t.Fatalf("expected HasDecorator(staticmethod) to be false")
	}
}

func TestIdentifierIsBothExpressionAndPattern(t *testing.T) {
	id := NewIdentifier(token.Span{}, "x")
	var _ Expression = id
	var _ Pattern = id
}
