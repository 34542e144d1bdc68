package memo

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/canonkey/canonkey/digest"
)

// slotKey addresses a property slot: the declaring type's identity plus the
// bare attribute name, so a subtype's attribute never collides with a
// parent's private one of the same name.
type slotKey struct {
	owner *Type
	attr  string
}

// callKey addresses one method result: the slot plus the digest of the
// normalized argument tuple.
type callKey struct {
	owner *Type
	attr  string
	args  digest.Digest
}

// Instance holds every cache slot for one object. Embed one Instance value
// in the struct whose attributes are memoized; the zero value is ready for
// use. Maps are guarded for memory safety only; at-most-once population is
// provided by WithSingleflight, not by Instance itself.
type Instance struct {
	mu     sync.Mutex
	props  map[slotKey]any
	calls  map[callKey]any
	flight singleflight.Group
}

func (in *Instance) loadProp(key slotKey) (any, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	v, ok := in.props[key]
	return v, ok
}

// storeProp writes the slot at most once: if a racing computation stored a
// value first, that value wins and the argument is discarded.
func (in *Instance) storeProp(key slotKey, v any) any {
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.props[key]; ok {
		return existing
	}
	if in.props == nil {
		in.props = make(map[slotKey]any)
	}
	in.props[key] = v
	return v
}

func (in *Instance) loadCall(key callKey) (any, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	v, ok := in.calls[key]
	return v, ok
}

func (in *Instance) storeCall(key callKey, v any) any {
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.calls[key]; ok {
		return existing
	}
	if in.calls == nil {
		in.calls = make(map[callKey]any)
	}
	in.calls[key] = v
	return v
}
