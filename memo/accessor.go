package memo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/canonkey/canonkey/digest"
)

// Accessor mediates every access to one cached attribute declared on one
// type. Property accessors implement get/set/delete semantics; method
// accessors implement call semantics.
type Accessor struct {
	owner  *Type
	name   string
	prop   PropertyFunc
	method *MethodDef
}

// IsProperty reports whether the accessor wraps a computed property.
func (a *Accessor) IsProperty() bool {
	return a.prop != nil
}

// Get reads a cached property. The first read per instance runs the
// property body and stores the result; later reads return the stored value
// without recomputation.
func (a *Accessor) Get(inst *Instance, self any) (any, error) {
	if a.prop == nil {
		return nil, fmt.Errorf("memo: attribute %s.%s is a method, not a property: %w", a.owner.name, a.name, ErrUsage)
	}
	key := slotKey{owner: a.owner, attr: a.name}
	if v, ok := inst.loadProp(key); ok {
		a.owner.metrics.RecordHit(context.Background(), a.owner.name, a.name)
		return v, nil
	}
	a.owner.metrics.RecordMiss(context.Background(), a.owner.name, a.name)

	compute := func() (any, error) { return a.prop(self) }
	var v any
	var err error
	if a.owner.flight {
		v, err, _ = inst.flight.Do(fmt.Sprintf("%p.%s", a.owner, a.name), compute)
	} else {
		v, err = compute()
	}
	if err != nil {
		return nil, err
	}
	v = inst.storeProp(key, v)
	a.owner.log.Debug("memo: property populated",
		zap.String("type", a.owner.name), zap.String("attr", a.name))
	return v, nil
}

// Set always fails: cached attributes are externally read-only.
func (a *Accessor) Set(any) error {
	return fmt.Errorf("memo: cannot assign attribute %s.%s: %w", a.owner.name, a.name, ErrImmutable)
}

// Delete always fails: cached attributes are externally read-only.
func (a *Accessor) Delete() error {
	return fmt.Errorf("memo: cannot delete attribute %s.%s: %w", a.owner.name, a.name, ErrImmutable)
}

// Call invokes a cached method. Arguments are bound and coerced against the
// method's signature, the normalized argument tuple is digested, and the
// digest keys this instance's slot for the attribute: a miss runs the
// method body once and stores the result, a hit returns the stored result.
// Calls whose normalized arguments coincide hit the same entry however they
// were spelled.
func (a *Accessor) Call(inst *Instance, self any, args []any, kwargs map[string]any) (any, error) {
	if a.method == nil {
		return nil, fmt.Errorf("memo: attribute %s.%s is a property, not a method: %w", a.owner.name, a.name, ErrUsage)
	}
	b, err := a.method.Sig.Bind(args, kwargs)
	if err != nil {
		return nil, err
	}
	if err := b.Coerce(); err != nil {
		return nil, err
	}
	d, err := digest.Hash(b.Normalized())
	if err != nil {
		return nil, fmt.Errorf("memo: cannot key call to %s.%s: %w", a.owner.name, a.name, err)
	}

	key := callKey{owner: a.owner, attr: a.name, args: d}
	if v, ok := inst.loadCall(key); ok {
		a.owner.metrics.RecordHit(context.Background(), a.owner.name, a.name)
		return v, nil
	}
	a.owner.metrics.RecordMiss(context.Background(), a.owner.name, a.name)

	compute := func() (any, error) {
		ca, ckw := b.Args()
		return a.method.Fn(self, ca, ckw)
	}
	var v any
	if a.owner.flight {
		v, err, _ = inst.flight.Do(fmt.Sprintf("%p.%s.%s", a.owner, a.name, d.Hex()), compute)
	} else {
		v, err = compute()
	}
	if err != nil {
		return nil, err
	}
	v = inst.storeCall(key, v)
	a.owner.log.Debug("memo: method result cached",
		zap.String("type", a.owner.name), zap.String("attr", a.name), zap.Stringer("args", d))
	return v, nil
}
