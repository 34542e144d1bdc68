package frozenmap

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/canonkey/canonkey/digest"
	"github.com/canonkey/canonkey/strict"
)

// Sentinel errors for frozen mappings.
var (
	// ErrValidation reports malformed construction input.
	ErrValidation = errors.New("frozenmap: validation failed")
	// ErrImmutable reports an attempted write to a frozen mapping.
	ErrImmutable = errors.New("frozenmap: mapping is immutable")
	// ErrNotFound reports a missing key. Unlike the other errors this is an
	// expected, caller-handled outcome.
	ErrNotFound = errors.New("frozenmap: key not found")
)

// Map is an immutable collection of unique keys each mapped to one value.
// Insertion order carries no meaning. The zero value is not usable; build
// instances with New or Typed.
type Map struct {
	s atomic.Pointer[store]
}

// store is the shared backing for one or more deduplicated Maps. items and
// fp are never written after construction; the digest fields are populated
// at most once under digOnce.
type store struct {
	items    map[any]any
	fp       uint64
	digOnce  sync.Once
	dig      digest.Digest
	digErr   error
	digReady atomic.Bool
}

// New builds a frozen mapping from a map of any key/value types, another
// *Map, a slice of key/value pairs ([][2]any or []any of two-element
// sequences), or an iter.Seq2. Keys must be comparable. Malformed input
// fails with ErrValidation.
func New(src any) (*Map, error) {
	if other, ok := src.(*Map); ok {
		if other == nil {
			return nil, fmt.Errorf("frozenmap: cannot build mapping from nil *Map: %w", ErrValidation)
		}
		m := &Map{}
		m.s.Store(other.s.Load())
		return m, nil
	}
	kvs, err := pairs(src)
	if err != nil {
		return nil, err
	}
	return fromPairs(kvs)
}

// Typed builds a frozen mapping whose keys are coerced through strict.Of[K]
// and values through strict.Of[V]. A coercion failure during construction
// fails with a validation error; an unsupported K or V surfaces
// strict.ErrUsage.
func Typed[K, V any](src any) (*Map, error) {
	kvs, err := pairs(src)
	if err != nil {
		return nil, err
	}
	kc, vc := strict.Of[K](), strict.Of[V]()
	for i, kv := range kvs {
		k, err := kc.Fn(kv[0])
		if err != nil {
			return nil, fmt.Errorf("frozenmap: key %v: %w", kv[0], err)
		}
		v, err := vc.Fn(kv[1])
		if err != nil {
			return nil, fmt.Errorf("frozenmap: value for key %v: %w", k, err)
		}
		kvs[i] = [2]any{k, v}
	}
	return fromPairs(kvs)
}

func pairs(src any) ([][2]any, error) {
	switch x := src.(type) {
	case *Map:
		if x == nil {
			return nil, fmt.Errorf("frozenmap: cannot build mapping from nil *Map: %w", ErrValidation)
		}
		out := make([][2]any, 0, x.Len())
		for k, v := range x.All() {
			out = append(out, [2]any{k, v})
		}
		return out, nil
	case [][2]any:
		out := make([][2]any, len(x))
		copy(out, x)
		return out, nil
	case []any:
		out := make([][2]any, 0, len(x))
		for _, item := range x {
			kv, err := asPair(item)
			if err != nil {
				return nil, err
			}
			out = append(out, kv)
		}
		return out, nil
	case iter.Seq2[any, any]:
		var out [][2]any
		for k, v := range x {
			out = append(out, [2]any{k, v})
		}
		return out, nil
	}

	rv := reflect.ValueOf(src)
	if src != nil && rv.Kind() == reflect.Map {
		out := make([][2]any, 0, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			out = append(out, [2]any{it.Key().Interface(), it.Value().Interface()})
		}
		return out, nil
	}
	return nil, fmt.Errorf("frozenmap: cannot build mapping from %T: %w", src, ErrValidation)
}

func asPair(item any) ([2]any, error) {
	switch kv := item.(type) {
	case [2]any:
		return kv, nil
	case []any:
		if len(kv) == 2 {
			return [2]any{kv[0], kv[1]}, nil
		}
	}
	return [2]any{}, fmt.Errorf("frozenmap: element %v is not a key/value pair: %w", item, ErrValidation)
}

func fromPairs(kvs [][2]any) (*Map, error) {
	items := make(map[any]any, len(kvs))
	for _, kv := range kvs {
		if !comparableKey(kv[0]) {
			return nil, fmt.Errorf("frozenmap: key of type %T is not comparable: %w", kv[0], ErrValidation)
		}
		items[kv[0]] = kv[1]
	}
	m := &Map{}
	m.s.Store(&store{items: items, fp: contentFingerprint(items)})
	return m, nil
}

func comparableKey(k any) bool {
	return k == nil || reflect.TypeOf(k).Comparable()
}

// contentFingerprint folds the per-key fingerprints of a key set into one
// 64-bit value. It is computed at construction, so Equal has a cheap
// negative filter before any entry walk or digest computation.
func contentFingerprint(items map[any]any) uint64 {
	var fp uint64
	for k := range items {
		fp ^= keyFingerprint(k)
	}
	return fp
}

// keyFingerprint hashes a key's exact type and printed value. Only types
// whose printed form agrees with Go equality participate; floats (where
// 0.0 and -0.0 compare equal but print differently) and composite keys
// contribute nothing, which keeps the filter sound: equal maps always
// carry equal fingerprints.
func keyFingerprint(k any) uint64 {
	switch k.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return xxhash.Sum64String(fmt.Sprintf("%T\x00%v", k, k))
	}
	return 0
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.s.Load().items)
}

// Has reports whether key is present.
func (m *Map) Has(key any) bool {
	if !comparableKey(key) {
		return false
	}
	_, ok := m.s.Load().items[key]
	return ok
}

// Get returns the value for key, or ErrNotFound if absent.
func (m *Map) Get(key any) (any, error) {
	if comparableKey(key) {
		if v, ok := m.s.Load().items[key]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("frozenmap: key %v: %w", key, ErrNotFound)
}

// Set always fails with ErrImmutable.
func (m *Map) Set(key, value any) error {
	return fmt.Errorf("frozenmap: cannot assign key %v: %w", key, ErrImmutable)
}

// Delete always fails with ErrImmutable.
func (m *Map) Delete(key any) error {
	return fmt.Errorf("frozenmap: cannot delete key %v: %w", key, ErrImmutable)
}

// All iterates over entries in unspecified order.
func (m *Map) All() iter.Seq2[any, any] {
	items := m.s.Load().items
	return func(yield func(any, any) bool) {
		for k, v := range items {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns the keys in unspecified order.
func (m *Map) Keys() []any {
	items := m.s.Load().items
	out := make([]any, 0, len(items))
	for k := range items {
		out = append(out, k)
	}
	return out
}

// Snapshot returns an ordinary mutable map with equal contents.
func (m *Map) Snapshot() map[any]any {
	items := m.s.Load().items
	out := make(map[any]any, len(items))
	for k, v := range items {
		out[k] = v
	}
	return out
}

// Equal reports structural equality: two maps are equal iff their key/value
// contents are equal as sets of pairs, irrespective of construction order.
// On success the receiver adopts the other map's backing store, so
// subsequent comparisons short-circuit on pointer identity. The adoption is
// a single atomic pointer store; a race can at worst repeat work.
func (m *Map) Equal(other *Map) bool {
	if m == other {
		return true
	}
	a, b := m.s.Load(), other.s.Load()
	if a == b {
		return true
	}
	if len(a.items) != len(b.items) {
		return false
	}
	// Cheap negatives: construction-time key fingerprints that disagree,
	// or previously computed digests that disagree, prove inequality
	// without walking the entries.
	if a.fp != b.fp {
		return false
	}
	if a.digReady.Load() && b.digReady.Load() && a.dig != b.dig {
		return false
	}
	for k, av := range a.items {
		bv, ok := b.items[k]
		if !ok || !valueEqual(av, bv) {
			return false
		}
	}
	m.s.Store(b)
	return true
}

func valueEqual(a, b any) bool {
	if am, ok := a.(*Map); ok {
		if bm, ok := b.(*Map); ok {
			return am.Equal(bm)
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Digest returns the canonical digest: the order-insensitive combination of
// per-pair digests, each pair being the ordered combination of its key and
// value digests. The result is cached on the backing store, so equal,
// deduplicated maps never recompute it.
func (m *Map) Digest() (digest.Digest, error) {
	s := m.s.Load()
	s.digOnce.Do(func() {
		pairDigests := make([]digest.Digest, 0, len(s.items))
		for k, v := range s.items {
			kd, err := digest.Hash(k)
			if err != nil {
				s.digErr = fmt.Errorf("frozenmap: key %v: %w", k, err)
				return
			}
			vd, err := digest.Hash(v)
			if err != nil {
				s.digErr = fmt.Errorf("frozenmap: value for key %v: %w", k, err)
				return
			}
			pairDigests = append(pairDigests, digest.Ordered(kd, vd))
		}
		s.dig = digest.Scoped("frozenmap", false, pairDigests...)
		s.digReady.Store(true)
	})
	return s.dig, s.digErr
}

// CanonicalDigest implements digest.Hashable, letting frozen maps flow
// through digest.Hash as ordinary hashable payloads.
func (m *Map) CanonicalDigest() (digest.Digest, error) {
	return m.Digest()
}

// StrictConstruct implements strict.Constructible, making *Map usable as a
// strict.Of type parameter.
func (*Map) StrictConstruct(v any) (any, error) {
	return New(v)
}
