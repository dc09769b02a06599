package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sandrolain/gomint/pkg/types"
)

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value types.Value
		want  bool
	}{
		{"invalid", types.Invalid(), false},
		{"false", types.Bool(false), false},
		{"true", types.Bool(true), true},
		{"zero", types.Number(0), true},
		{"negative", types.Number(-1), true},
		{"empty string", types.String(""), true},
		{"string", types.String("no"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Truthy(); got != tt.want {
				t.Errorf("%s.Truthy() = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value types.Value
		want  string
	}{
		{types.Invalid(), "Invalid"},
		{types.Bool(true), "Bool(true)"},
		{types.Bool(false), "Bool(false)"},
		{types.Number(1), "Number(1)"},
		{types.Number(2.5), "Number(2.5)"},
		{types.String("x"), `String("x")`},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	if n, ok := types.Number(3).AsNumber(); !ok || n != 3 {
		t.Errorf("AsNumber() = %v, %v", n, ok)
	}
	if _, ok := types.Bool(true).AsNumber(); ok {
		t.Error("Bool should not convert to a number")
	}
	if s, ok := types.String("a").AsString(); !ok || s != "a" {
		t.Errorf("AsString() = %q, %v", s, ok)
	}
	if b, ok := types.Bool(true).AsBool(); !ok || !b {
		t.Errorf("AsBool() = %v, %v", b, ok)
	}
	if types.Invalid().Kind() != types.KindInvalid {
		t.Error("zero value should be Invalid")
	}
	if types.Number(1) != types.Number(1) {
		t.Error("equal numbers should compare equal")
	}
	if types.Number(1) == types.Bool(true) {
		t.Error("values of different kinds should differ")
	}
}

func TestTagPatternContains(t *testing.T) {
	p := types.OneOf("highway", "path", "track")
	if !p.Contains("track") {
		t.Error("expected track to be a member")
	}
	if p.Contains("motorway") {
		t.Error("expected motorway not to be a member")
	}
	if got := types.FormatPattern(types.NoneOf("access", "private", "no")); got != "access!=private|no" {
		t.Errorf("FormatPattern() = %q", got)
	}
	if got := types.FormatPattern(types.NotExists("bicycle")); got != "!bicycle" {
		t.Errorf("FormatPattern() = %q", got)
	}
}

func TestErrorIsCode(t *testing.T) {
	inner := types.NewTypeError(types.String("x"), "number|invalid")
	outer := types.NewError(types.ErrConstEval, "evaluating constant \"a\"", 12).WithCause(inner)
	wrapped := fmt.Errorf("loading: %w", outer)

	if !types.IsCode(wrapped, types.ErrConstEval) {
		t.Error("expected ErrConstEval")
	}
	if !types.IsCode(wrapped, types.ErrTypeMismatch) {
		t.Error("expected the cause to be found")
	}
	if types.IsCode(wrapped, types.ErrUnknownIdent) {
		t.Error("unexpected ErrUnknownIdent")
	}
	if types.IsCode(errors.New("plain"), types.ErrInternal) {
		t.Error("plain errors carry no code")
	}

	var te *types.Error
	if !errors.As(inner, &te) || te.Have != `String("x")` || te.Expected != "number|invalid" {
		t.Errorf("unexpected type error fields: %+v", te)
	}
}

func TestErrorMessage(t *testing.T) {
	err := types.NewError(types.ErrUnknownIdent, `unknown identifier "x"`, 7)
	if got, want := err.Error(), `C0102 at position 7: unknown identifier "x"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = types.NewInternalError("bad slot reference: %d", 3)
	if got, want := err.Error(), "R0101: internal error: bad slot reference: 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
