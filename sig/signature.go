package sig

import (
	"errors"
	"fmt"

	"github.com/canonkey/canonkey/strict"
)

// Sentinel errors for signatures and binding.
var (
	// ErrUsage reports an invalid signature declaration.
	ErrUsage = errors.New("sig: usage error")
	// ErrValidation reports arguments that cannot be bound or coerced.
	ErrValidation = errors.New("sig: validation failed")
)

// ParamKind describes how a parameter may be bound.
type ParamKind int

const (
	// PositionalOnly binds by position exclusively.
	PositionalOnly ParamKind = iota
	// PositionalOrKeyword binds by position or by name.
	PositionalOrKeyword
	// KeywordOnly binds by name exclusively.
	KeywordOnly
	// VarPositional collects the positional tail into one sequence.
	VarPositional
	// VarKeyword collects unmatched keyword arguments into one mapping.
	VarKeyword
)

func (k ParamKind) String() string {
	switch k {
	case PositionalOnly:
		return "positional-only"
	case PositionalOrKeyword:
		return "positional-or-keyword"
	case KeywordOnly:
		return "keyword-only"
	case VarPositional:
		return "var-positional"
	case VarKeyword:
		return "var-keyword"
	default:
		return fmt.Sprintf("param-kind(%d)", int(k))
	}
}

// Param is one parameter descriptor.
type Param struct {
	Name       string
	Kind       ParamKind
	Coercer    strict.Coercer
	Default    any
	HasDefault bool
}

// Arg declares a positional-or-keyword parameter.
func Arg(name string) Param {
	return Param{Name: name, Kind: PositionalOrKeyword}
}

// PosOnly declares a positional-only parameter.
func PosOnly(name string) Param {
	return Param{Name: name, Kind: PositionalOnly}
}

// KwOnly declares a keyword-only parameter.
func KwOnly(name string) Param {
	return Param{Name: name, Kind: KeywordOnly}
}

// VarArgs declares the var-positional parameter.
func VarArgs(name string) Param {
	return Param{Name: name, Kind: VarPositional}
}

// VarKw declares the var-keyword parameter.
func VarKw(name string) Param {
	return Param{Name: name, Kind: VarKeyword}
}

// WithCoercer attaches a coercer to the parameter. For var-positional and
// var-keyword parameters the coercer receives the whole collected sequence
// or mapping.
func (p Param) WithCoercer(c strict.Coercer) Param {
	p.Coercer = c
	return p
}

// WithDefault attaches a default value to the parameter.
func (p Param) WithDefault(v any) Param {
	p.Default = v
	p.HasDefault = true
	return p
}

// Signature is an ordered, validated parameter list.
type Signature struct {
	params []Param
	byName map[string]int
}

// NewSignature validates the declared parameter order: positional-only,
// then positional-or-keyword, then at most one var-positional, then
// keyword-only, then at most one var-keyword. A required positional
// parameter may not follow one with a default.
func NewSignature(params ...Param) (*Signature, error) {
	byName := make(map[string]int, len(params))
	stage := 0
	sawDefault := false
	for i, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("sig: parameter %d has no name: %w", i, ErrUsage)
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("sig: duplicate parameter %q: %w", p.Name, ErrUsage)
		}
		byName[p.Name] = i

		var minStage int
		switch p.Kind {
		case PositionalOnly:
			minStage = 0
		case PositionalOrKeyword:
			minStage = 1
		case VarPositional:
			minStage = 2
		case KeywordOnly:
			minStage = 3
		case VarKeyword:
			minStage = 4
		default:
			return nil, fmt.Errorf("sig: parameter %q has unknown kind %v: %w", p.Name, p.Kind, ErrUsage)
		}
		if minStage < stage {
			return nil, fmt.Errorf("sig: parameter %q (%v) out of order: %w", p.Name, p.Kind, ErrUsage)
		}
		stage = minStage
		if p.Kind == VarPositional || p.Kind == VarKeyword {
			// The stage advances past the variadic slot so a second one of
			// the same kind is rejected above.
			stage = minStage + 1
			if p.HasDefault {
				return nil, fmt.Errorf("sig: variadic parameter %q cannot have a default: %w", p.Name, ErrUsage)
			}
			continue
		}

		if p.Kind == PositionalOnly || p.Kind == PositionalOrKeyword {
			if p.HasDefault {
				sawDefault = true
			} else if sawDefault {
				return nil, fmt.Errorf("sig: required parameter %q follows a parameter with a default: %w", p.Name, ErrUsage)
			}
		}
	}
	return &Signature{params: params, byName: byName}, nil
}

// MustSignature is like NewSignature but panics on error. Intended for
// statically known declarations.
func MustSignature(params ...Param) *Signature {
	s, err := NewSignature(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Positional builds a signature of plain positional-or-keyword parameters
// with no coercers, the common case for memoized methods.
func Positional(names ...string) *Signature {
	params := make([]Param, len(names))
	for i, name := range names {
		params[i] = Arg(name)
	}
	return MustSignature(params...)
}

// Params returns the parameter descriptors in declaration order.
func (s *Signature) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}
