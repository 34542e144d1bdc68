package memo

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/canonkey/canonkey/observe"
	"github.com/canonkey/canonkey/sig"
)

// Sentinel errors for memoized attributes.
var (
	// ErrUsage reports an invalid cached-attribute declaration or lookup.
	ErrUsage = errors.New("memo: usage error")
	// ErrImmutable reports an external write to a cached attribute.
	ErrImmutable = errors.New("memo: cached attribute is read-only")
)

// PropertyFunc is the body of a zero-argument computed property.
type PropertyFunc func(self any) (any, error)

// MethodFunc is the body of a cached method, invoked with bound, coerced
// arguments.
type MethodFunc func(self any, args []any, kwargs map[string]any) (any, error)

// MethodDef declares a cached method: its signature (used verbatim for
// binding and coercion) and its body.
type MethodDef struct {
	Sig *sig.Signature
	Fn  MethodFunc
}

// Type is the assembled description of a type with cached attributes. It is
// built once, validated, and shared by every instance.
type Type struct {
	name      string
	parent    *Type
	accessors map[string]*Accessor
	flight    bool
	metrics   *observe.Metrics
	log       *zap.Logger
}

// Option configures a Type.
type Option func(*Type)

// WithSingleflight collapses concurrent first-population of the same slot
// into a single execution of the underlying computation.
func WithSingleflight() Option {
	return func(t *Type) { t.flight = true }
}

// WithMetrics records cache hits and misses on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(t *Type) { t.metrics = m }
}

// WithLogger logs slot population at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(t *Type) { t.log = log }
}

// NewType assembles a type named name. Every attribute listed in cached
// must resolve in attrs to a PropertyFunc or a *MethodDef; a missing name
// or any other kind fails with ErrUsage naming the offending attribute.
func NewType(name string, cached []string, attrs map[string]any, opts ...Option) (*Type, error) {
	return newType(nil, name, cached, attrs, opts...)
}

// Extend assembles a subtype of parent. The subtype may redeclare a cached
// attribute of the parent; each declaring type keeps an independent slot
// namespace per instance, so parent and child values never collide.
func Extend(parent *Type, name string, cached []string, attrs map[string]any, opts ...Option) (*Type, error) {
	if parent == nil {
		return nil, fmt.Errorf("memo: nil parent type: %w", ErrUsage)
	}
	return newType(parent, name, cached, attrs, opts...)
}

func newType(parent *Type, name string, cached []string, attrs map[string]any, opts ...Option) (*Type, error) {
	t := &Type{
		name:      name,
		parent:    parent,
		accessors: make(map[string]*Accessor, len(cached)),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	for _, attr := range cached {
		decl, ok := attrs[attr]
		if !ok {
			return nil, fmt.Errorf("memo: attribute listed in cache set is undefined: %s: %w", attr, ErrUsage)
		}
		switch d := decl.(type) {
		case PropertyFunc:
			t.accessors[attr] = &Accessor{owner: t, name: attr, prop: d}
		case func(self any) (any, error):
			t.accessors[attr] = &Accessor{owner: t, name: attr, prop: d}
		case *MethodDef:
			if d == nil || d.Sig == nil || d.Fn == nil {
				return nil, fmt.Errorf("memo: incomplete method declaration for attribute %s: %w", attr, ErrUsage)
			}
			t.accessors[attr] = &Accessor{owner: t, name: attr, method: d}
		default:
			return nil, fmt.Errorf("memo: don't know how to cache attribute %s (declared as %T): %w", attr, decl, ErrUsage)
		}
	}
	return t, nil
}

// Name returns the type's name.
func (t *Type) Name() string {
	return t.name
}

// Attr resolves a cached attribute's accessor on t or the nearest ancestor
// declaring it.
func (t *Type) Attr(name string) (*Accessor, error) {
	for cur := t; cur != nil; cur = cur.parent {
		if a, ok := cur.accessors[name]; ok {
			return a, nil
		}
	}
	return nil, fmt.Errorf("memo: type %s has no cached attribute %s: %w", t.name, name, ErrUsage)
}

// MustAttr is like Attr but panics on error. Intended for statically known
// attribute names.
func (t *Type) MustAttr(name string) *Accessor {
	a, err := t.Attr(name)
	if err != nil {
		panic(err)
	}
	return a
}
