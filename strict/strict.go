package strict

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// Sentinel errors for coercion.
var (
	// ErrValidation reports input that cannot be coerced to the target type.
	ErrValidation = errors.New("strict: validation failed")
	// ErrUsage reports misuse of a coercer, such as a missing type parameter.
	ErrUsage = errors.New("strict: usage error")
)

// Int coerces v to an exact integer. It accepts every integer kind,
// including *big.Int values that fit in 64 bits, and rejects floats (even
// integral-valued ones), complex numbers and text.
func Int(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return uintToInt64(uint64(x))
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return uintToInt64(x)
	case *big.Int:
		if !x.IsInt64() {
			return 0, fmt.Errorf("strict: integer %s overflows int64: %w", x, ErrValidation)
		}
		return x.Int64(), nil
	}
	return 0, fmt.Errorf("strict: cannot coerce %T to int: %w", v, ErrValidation)
}

func uintToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("strict: integer %d overflows int64: %w", v, ErrValidation)
	}
	return int64(v), nil
}

// Float coerces v to an exact float. It accepts integer and floating kinds
// and rejects complex numbers and text.
func Float(v any) (float64, error) {
	switch x := v.(type) {
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	}
	if n, err := Int(v); err == nil {
		return float64(n), nil
	}
	return 0, fmt.Errorf("strict: cannot coerce %T to float: %w", v, ErrValidation)
}

// Str accepts only text values.
func Str(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("strict: cannot coerce %T to string: %w", v, ErrValidation)
}
