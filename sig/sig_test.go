package sig

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/canonkey/canonkey/strict"
)

// echo returns its flattened arguments for inspection.
func echo(args []any, kwargs map[string]any) (any, error) {
	return []any{args, kwargs}, nil
}

func call(t *testing.T, fn Func, args []any, kwargs map[string]any) ([]any, map[string]any) {
	t.Helper()
	out, err := fn(args, kwargs)
	if err != nil {
		t.Fatalf("call error = %v", err)
	}
	parts := out.([]any)
	return parts[0].([]any), parts[1].(map[string]any)
}

func TestApply_WithoutCoercers(t *testing.T) {
	fn := Positional("a", "b").Apply(echo)
	args, _ := call(t, fn, []any{1, 2}, nil)
	if !reflect.DeepEqual(args, []any{1, 2}) {
		t.Errorf("args = %v, want [1 2]", args)
	}
}

func TestApply_CoercesByKind(t *testing.T) {
	s := MustSignature(
		Arg("a").WithCoercer(strict.Of[int64]()),
		Arg("b"),
		Arg("c").WithCoercer(strict.Of[float64]()),
	)
	fn := s.Apply(echo)
	args, _ := call(t, fn, []any{int32(1), 2, 3}, nil)
	want := []any{int64(1), 2, 3.0}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestApply_PositionalOnly(t *testing.T) {
	s := MustSignature(PosOnly("a").WithCoercer(strict.Of[int64]()))
	fn := s.Apply(echo)
	args, _ := call(t, fn, []any{uint8(7)}, nil)
	if !reflect.DeepEqual(args, []any{int64(7)}) {
		t.Errorf("args = %v, want [7]", args)
	}

	if _, err := fn(nil, map[string]any{"a": 1}); !errors.Is(err, ErrValidation) {
		t.Errorf("keyword use of positional-only parameter: error = %v, want ErrValidation", err)
	}
}

func TestApply_KeywordOnly(t *testing.T) {
	s := MustSignature(
		Arg("a"),
		KwOnly("b").WithCoercer(strict.Of[int64]()),
	)
	fn := s.Apply(echo)
	args, kwargs := call(t, fn, []any{"spam"}, map[string]any{"b": int16(2)})
	if !reflect.DeepEqual(args, []any{"spam"}) {
		t.Errorf("args = %v", args)
	}
	if !reflect.DeepEqual(kwargs, map[string]any{"b": int64(2)}) {
		t.Errorf("kwargs = %v", kwargs)
	}

	if _, err := fn(nil, map[string]any{"a": 1}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing keyword-only argument: error = %v, want ErrValidation", err)
	}
}

func TestApply_VarPositional(t *testing.T) {
	s := MustSignature(Arg("a"), VarArgs("rest"))
	fn := s.Apply(echo)
	args, _ := call(t, fn, []any{1, 2, 3}, nil)
	if !reflect.DeepEqual(args, []any{1, 2, 3}) {
		t.Errorf("args = %v, want [1 2 3]", args)
	}
}

func TestApply_VarPositionalCoerced(t *testing.T) {
	// The coercer sees the whole collected tail at once.
	s := MustSignature(Arg("a"), VarArgs("rest").WithCoercer(strict.Tuple(strict.Of[int64]())))
	fn := s.Apply(echo)
	args, _ := call(t, fn, []any{"spam", int8(2), uint16(3)}, nil)
	want := []any{"spam", int64(2), int64(3)}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestApply_VarKeywordCoerced(t *testing.T) {
	stringify := strict.Coercer{Name: "stringify", Fn: func(v any) (any, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("stringify: not a mapping: %w", strict.ErrValidation)
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = fmt.Sprint(item)
		}
		return out, nil
	}}

	s := MustSignature(Arg("a"), VarKw("extra").WithCoercer(stringify))
	fn := s.Apply(echo)
	args, kwargs := call(t, fn, []any{1}, map[string]any{"b": 2, "c": 3})
	if !reflect.DeepEqual(args, []any{1}) {
		t.Errorf("args = %v", args)
	}
	if !reflect.DeepEqual(kwargs, map[string]any{"b": "2", "c": "3"}) {
		t.Errorf("kwargs = %v", kwargs)
	}
}

func TestApply_NilDefaultSkipsCoercion(t *testing.T) {
	s := MustSignature(Arg("a").WithCoercer(strict.Of[int64]()).WithDefault(nil))
	fn := s.Apply(echo)

	args, _ := call(t, fn, nil, nil)
	if args[0] != nil {
		t.Errorf("absent argument = %v, want nil passed through", args[0])
	}

	args, _ = call(t, fn, []any{nil}, nil)
	if args[0] != nil {
		t.Errorf("explicit nil = %v, want nil passed through", args[0])
	}

	args, _ = call(t, fn, []any{uint8(1)}, nil)
	if args[0] != int64(1) {
		t.Errorf("present argument = %v, want coerced int64(1)", args[0])
	}
}

func TestApply_CoercerFailureSkipsCallable(t *testing.T) {
	invoked := false
	s := MustSignature(Arg("a").WithCoercer(strict.Of[int64]()))
	fn := s.Apply(func(args []any, kwargs map[string]any) (any, error) {
		invoked = true
		return nil, nil
	})

	_, err := fn([]any{"spam"}, nil)
	if !errors.Is(err, strict.ErrValidation) {
		t.Fatalf("error = %v, want strict.ErrValidation", err)
	}
	if invoked {
		t.Error("callable ran despite coercion failure")
	}
}

func TestBind_Errors(t *testing.T) {
	s := Positional("a", "b")

	tests := []struct {
		name   string
		args   []any
		kwargs map[string]any
	}{
		{"too many positional", []any{1, 2, 3}, nil},
		{"unexpected keyword", []any{1, 2}, map[string]any{"c": 3}},
		{"multiple values", []any{1, 2}, map[string]any{"a": 1}},
		{"missing required", []any{1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Bind(tt.args, tt.kwargs); !errors.Is(err, ErrValidation) {
				t.Errorf("Bind() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestBound_NormalizedSpellingInvariant(t *testing.T) {
	s := Positional("a", "b")

	positional, err := s.Bind([]any{1, 2}, nil)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	keyword, err := s.Bind(nil, map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	mixed, err := s.Bind([]any{1}, map[string]any{"b": 2})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	want := positional.Normalized()
	for name, b := range map[string]*Bound{"keyword": keyword, "mixed": mixed} {
		if got := b.Normalized(); !reflect.DeepEqual(got, want) {
			t.Errorf("%s spelling normalized to %v, want %v", name, got, want)
		}
	}
}

func TestBound_NormalizedVarKeywordSorted(t *testing.T) {
	s := MustSignature(Arg("a"), VarKw("extra"))
	b1, err := s.Bind([]any{1}, map[string]any{"x": 1, "y": 2})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	b2, err := s.Bind(nil, map[string]any{"y": 2, "a": 1, "x": 1})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if !reflect.DeepEqual(b1.Normalized(), b2.Normalized()) {
		t.Errorf("normalized forms differ: %v vs %v", b1.Normalized(), b2.Normalized())
	}
}

func TestNewSignature_UsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		params []Param
	}{
		{"empty name", []Param{{Kind: PositionalOrKeyword}}},
		{"duplicate name", []Param{Arg("a"), Arg("a")}},
		{"positional after keyword-only", []Param{KwOnly("a"), Arg("b")}},
		{"two var-positional", []Param{VarArgs("a"), VarArgs("b")}},
		{"two var-keyword", []Param{VarKw("a"), VarKw("b")}},
		{"var-keyword before keyword-only", []Param{VarKw("a"), KwOnly("b")}},
		{"required after default", []Param{Arg("a").WithDefault(1), Arg("b")}},
		{"variadic default", []Param{VarArgs("a").WithDefault(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSignature(tt.params...); !errors.Is(err, ErrUsage) {
				t.Errorf("NewSignature() error = %v, want ErrUsage", err)
			}
		})
	}
}
