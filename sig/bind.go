package sig

import (
	"fmt"
	"sort"
)

// Bound holds call arguments matched to a signature's parameters. The
// var-positional slot holds the collected []any tail, the var-keyword slot
// the collected map[string]any.
type Bound struct {
	sig    *Signature
	values []any
}

// Bind matches actual call arguments to the signature's parameters
// following their declared kinds: positional arguments fill positional
// parameters in order with any overflow collected by the var-positional
// parameter, keyword arguments match positional-or-keyword and keyword-only
// parameters by name with the remainder collected by the var-keyword
// parameter. Unbound parameters take their defaults. Any mismatch fails
// with ErrValidation before the callable runs.
func (s *Signature) Bind(args []any, kwargs map[string]any) (*Bound, error) {
	values := make([]any, len(s.params))
	bound := make([]bool, len(s.params))

	next := 0
	varPos := -1
	varKw := -1
	for i, p := range s.params {
		switch p.Kind {
		case VarPositional:
			varPos = i
		case VarKeyword:
			varKw = i
		case PositionalOnly, PositionalOrKeyword:
			if next < len(args) {
				values[i] = args[next]
				bound[i] = true
				next++
			}
		}
	}
	if next < len(args) {
		if varPos < 0 {
			return nil, fmt.Errorf("sig: too many positional arguments (%d given): %w", len(args), ErrValidation)
		}
		tail := make([]any, len(args)-next)
		copy(tail, args[next:])
		values[varPos] = tail
		bound[varPos] = true
	}

	var extra map[string]any
	for name, v := range kwargs {
		i, ok := s.byName[name]
		if ok && (s.params[i].Kind == PositionalOrKeyword || s.params[i].Kind == KeywordOnly) {
			if bound[i] {
				return nil, fmt.Errorf("sig: got multiple values for argument %q: %w", name, ErrValidation)
			}
			values[i] = v
			bound[i] = true
			continue
		}
		if varKw < 0 {
			return nil, fmt.Errorf("sig: unexpected keyword argument %q: %w", name, ErrValidation)
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[name] = v
	}

	for i, p := range s.params {
		if bound[i] {
			continue
		}
		switch p.Kind {
		case VarPositional:
			values[i] = []any{}
		case VarKeyword:
			if extra == nil {
				extra = make(map[string]any)
			}
			values[i] = extra
		default:
			if !p.HasDefault {
				return nil, fmt.Errorf("sig: missing required argument %q: %w", p.Name, ErrValidation)
			}
			values[i] = p.Default
		}
	}
	return &Bound{sig: s, values: values}, nil
}

// Coerce applies each annotated parameter's coercer to its bound value,
// replacing the value with the result. A parameter declaring a nil default
// passes a bound nil through unchanged. The first failure propagates as a
// validation error.
func (b *Bound) Coerce() error {
	for i, p := range b.sig.params {
		if !p.Coercer.Valid() {
			continue
		}
		v := b.values[i]
		if p.HasDefault && p.Default == nil && v == nil {
			continue
		}
		coerced, err := p.Coercer.Fn(v)
		if err != nil {
			return fmt.Errorf("sig: argument %q: %w", p.Name, err)
		}
		b.values[i] = coerced
	}
	return nil
}

// Value returns the bound value for the named parameter.
func (b *Bound) Value(name string) (any, bool) {
	i, ok := b.sig.byName[name]
	if !ok {
		return nil, false
	}
	return b.values[i], true
}

// Args flattens the bound values back into positional arguments and a
// keyword mapping for invoking the underlying callable.
func (b *Bound) Args() ([]any, map[string]any) {
	var args []any
	kwargs := make(map[string]any)
	for i, p := range b.sig.params {
		switch p.Kind {
		case PositionalOnly, PositionalOrKeyword:
			args = append(args, b.values[i])
		case VarPositional:
			if tail, ok := b.values[i].([]any); ok {
				args = append(args, tail...)
			} else if b.values[i] != nil {
				args = append(args, b.values[i])
			}
		case KeywordOnly:
			kwargs[p.Name] = b.values[i]
		case VarKeyword:
			if m, ok := b.values[i].(map[string]any); ok {
				for k, v := range m {
					kwargs[k] = v
				}
			}
		}
	}
	return args, kwargs
}

// Normalized returns the canonical tuple of bound values: named parameters
// in declaration order, the var-positional tail as a nested sequence, and
// the var-keyword mapping as name-sorted pairs. Calls that bind to the same
// values normalize identically however they were spelled.
func (b *Bound) Normalized() []any {
	out := make([]any, 0, len(b.sig.params))
	for i, p := range b.sig.params {
		if p.Kind == VarKeyword {
			m, ok := b.values[i].(map[string]any)
			if !ok {
				out = append(out, b.values[i])
				continue
			}
			names := make([]string, 0, len(m))
			for name := range m {
				names = append(names, name)
			}
			sort.Strings(names)
			pairs := make([]any, len(names))
			for j, name := range names {
				pairs[j] = []any{name, m[name]}
			}
			out = append(out, pairs)
			continue
		}
		out = append(out, b.values[i])
	}
	return out
}

// Func is the flattened calling convention for wrapped callables.
type Func func(args []any, kwargs map[string]any) (any, error)

// Apply wraps fn so every call is bound and coerced against the signature
// before fn executes. Coercer failures propagate without invoking fn.
func (s *Signature) Apply(fn Func) Func {
	return func(args []any, kwargs map[string]any) (any, error) {
		b, err := s.Bind(args, kwargs)
		if err != nil {
			return nil, err
		}
		if err := b.Coerce(); err != nil {
			return nil, err
		}
		a, kw := b.Args()
		return fn(a, kw)
	}
}
