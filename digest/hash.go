package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
)

// Kind identifies the exact runtime category of a hashable value. Hashing a
// Kind itself produces a dedicated constant distinct from any instance of
// that kind, so the type "int" and the value 1 never share a digest.
type Kind uint8

// Supported built-in kinds.
const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindComplex
	KindString
	KindBytes
	KindTuple
	KindSet
	KindMap
)

var kindNames = map[Kind]string{
	KindNone:    "none",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindComplex: "complex",
	KindString:  "string",
	KindBytes:   "bytes",
	KindTuple:   "tuple",
	KindSet:     "set",
	KindMap:     "map",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Set marks a slice as an unordered collection: element order never affects
// the digest, and duplicate elements collapse to one.
type Set []any

// Tag bytes prefix every encoding so that no two kinds share a digest
// namespace. The tag for a value kind is never equal to the tag used when
// hashing the Kind constant itself.
const (
	tagNone    = 'N'
	tagBool    = 'B'
	tagInt     = 'I'
	tagFloat   = 'F'
	tagComplex = 'C'
	tagString  = 'S'
	tagBytes   = 'Y'
	tagTuple   = 'T'
	tagSet     = 'E'
	tagKind    = 'K'
	tagScoped  = 'V'
)

// Hash maps a supported value to its canonical digest.
//
// Contract:
// - Determinism: equal values of the same kind always produce equal digests,
//   across calls and across process restarts.
// - Kind separation: values of different kinds never share a digest, even
//   when they compare equal under loose numeric equality.
// - Values implementing Hashable are digested by their own CanonicalDigest.
// - Values with no stable canonical encoding fail with ErrUnhashable.
func Hash(v any) (Digest, error) {
	if h, ok := v.(Hashable); ok {
		return h.CanonicalDigest()
	}
	switch x := v.(type) {
	case nil:
		return sum(tagNone, nil), nil
	case bool:
		if x {
			return sum(tagBool, []byte{1}), nil
		}
		return sum(tagBool, []byte{0}), nil
	case int:
		return hashInt64(int64(x)), nil
	case int8:
		return hashInt64(int64(x)), nil
	case int16:
		return hashInt64(int64(x)), nil
	case int32:
		return hashInt64(int64(x)), nil
	case int64:
		return hashInt64(x), nil
	case uint:
		return hashUint64(uint64(x)), nil
	case uint8:
		return hashUint64(uint64(x)), nil
	case uint16:
		return hashUint64(uint64(x)), nil
	case uint32:
		return hashUint64(uint64(x)), nil
	case uint64:
		return hashUint64(x), nil
	case *big.Int:
		return hashBigInt(x), nil
	case float32:
		return hashFloat(float64(x)), nil
	case float64:
		return hashFloat(x), nil
	case complex64:
		return hashComplex(complex128(x)), nil
	case complex128:
		return hashComplex(x), nil
	case string:
		return sum(tagString, lengthPrefixed([]byte(x))), nil
	case []byte:
		return sum(tagBytes, lengthPrefixed(x)), nil
	case Set:
		return hashSet(x)
	case Kind:
		return sum(tagKind, []byte{byte(x)}), nil
	}

	// Slices and arrays of any element type hash as ordered sequences.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		elems := make([]Digest, rv.Len())
		for i := range rv.Len() {
			d, err := Hash(rv.Index(i).Interface())
			if err != nil {
				return Digest{}, err
			}
			elems[i] = d
		}
		return Ordered(elems...), nil
	}

	return Digest{}, fmt.Errorf("%w: %T", ErrUnhashable, v)
}

// MustHash is like Hash but panics on error. Intended for values that are
// statically known to be hashable.
func MustHash(v any) Digest {
	d, err := Hash(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Ordered combines already-computed element digests order-sensitively:
// swapping two unequal elements changes the result.
func Ordered(elems ...Digest) Digest {
	h := sha256.New()
	h.Write([]byte{tagTuple})
	for _, e := range elems {
		h.Write(e[:])
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// Unordered combines already-computed element digests order-insensitively:
// any permutation of elems produces the same result, and duplicate digests
// collapse to one.
func Unordered(elems ...Digest) Digest {
	return mixUnordered(tagSet, nil, elems)
}

// Scoped digests elements within a caller-owned namespace, so composite
// types (mappings, user containers) occupy a digest space disjoint from
// every built-in kind. When ordered is false the elements combine
// order-insensitively.
func Scoped(namespace string, ordered bool, elems ...Digest) Digest {
	prefix := lengthPrefixed([]byte(namespace))
	if ordered {
		h := sha256.New()
		h.Write([]byte{tagScoped, 1})
		h.Write(prefix)
		for _, e := range elems {
			h.Write(e[:])
		}
		var d Digest
		h.Sum(d[:0])
		return d
	}
	return mixUnordered(tagScoped, prefix, elems)
}

func mixUnordered(tag byte, prefix []byte, elems []Digest) Digest {
	sorted := make([]Digest, len(elems))
	copy(sorted, elems)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	h := sha256.New()
	h.Write([]byte{tag, 0})
	h.Write(prefix)
	var prev Digest
	for i, e := range sorted {
		if i > 0 && e == prev {
			continue
		}
		h.Write(e[:])
		prev = e
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

func hashSet(s Set) (Digest, error) {
	elems := make([]Digest, len(s))
	for i, v := range s {
		d, err := Hash(v)
		if err != nil {
			return Digest{}, err
		}
		elems[i] = d
	}
	return Unordered(elems...), nil
}

// Integers encode as sign byte plus big-endian magnitude, so every integer
// width (and *big.Int beyond 64 bits) shares one arbitrary-precision
// encoding: int32(7), int64(7) and big.NewInt(7) digest identically.
func hashInt64(v int64) Digest {
	if v >= 0 {
		return hashUint64(uint64(v))
	}
	var buf [8]byte
	// Two's-complement negation is safe here: math.MinInt64 negates to its
	// own unsigned magnitude.
	binary.BigEndian.PutUint64(buf[:], -uint64(v))
	return sum(tagInt, append([]byte{0}, trimLeadingZeros(buf[:])...))
}

func hashUint64(v uint64) Digest {
	if v == 0 {
		return sum(tagInt, []byte{1})
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return sum(tagInt, append([]byte{2}, trimLeadingZeros(buf[:])...))
}

func hashBigInt(v *big.Int) Digest {
	switch v.Sign() {
	case 0:
		return sum(tagInt, []byte{1})
	case -1:
		return sum(tagInt, append([]byte{0}, v.Bytes()...))
	default:
		return sum(tagInt, append([]byte{2}, v.Bytes()...))
	}
}

func hashFloat(v float64) Digest {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	return sum(tagFloat, buf[:])
}

func hashComplex(v complex128) Digest {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], math.Float64bits(real(v)))
	binary.BigEndian.PutUint64(buf[8:], math.Float64bits(imag(v)))
	return sum(tagComplex, buf[:])
}

func lengthPrefixed(b []byte) []byte {
	out := binary.AppendUvarint(nil, uint64(len(b)))
	return append(out, b...)
}

func trimLeadingZeros(b []byte) []byte {
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	return b
}

func sum(tag byte, payload []byte) Digest {
	h := sha256.New()
	h.Write([]byte{tag})
	h.Write(payload)
	var d Digest
	h.Sum(d[:0])
	return d
}
