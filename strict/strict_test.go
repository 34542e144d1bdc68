package strict

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr error
	}{
		{"int", 1, 1, nil},
		{"int32", int32(-7), -7, nil},
		{"uint8", uint8(255), 255, nil},
		{"uint64", uint64(42), 42, nil},
		{"big int", big.NewInt(9), 9, nil},
		{"uint64 overflow", uint64(math.MaxUint64), 0, ErrValidation},
		{"big int overflow", new(big.Int).Lsh(big.NewInt(1), 80), 0, ErrValidation},
		{"float", 1.0, 0, ErrValidation},
		{"complex", complex(1, 0), 0, ErrValidation},
		{"string", "1", 0, ErrValidation},
		{"nil", nil, 0, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    float64
		wantErr error
	}{
		{"int", 1, 1.0, nil},
		{"int64", int64(-2), -2.0, nil},
		{"float32", float32(2.5), 2.5, nil},
		{"float64", 2.5, 2.5, nil},
		{"complex", complex(1, 0), 0, ErrValidation},
		{"string", "1.0", 0, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Float(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStr(t *testing.T) {
	got, err := Str("spam")
	require.NoError(t, err)
	assert.Equal(t, "spam", got)

	_, err = Str(1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOf_Int(t *testing.T) {
	coerce := Of[int64]()
	assert.Equal(t, "int64", coerce.Name)

	got, err := coerce.Fn(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	_, err = coerce.Fn("1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOf_ExactKind(t *testing.T) {
	got, err := Of[int]().Fn(int16(3))
	require.NoError(t, err)
	assert.IsType(t, int(0), got)

	got, err = Of[float64]().Fn(2)
	require.NoError(t, err)
	assert.IsType(t, float64(0), got)
	assert.Equal(t, 2.0, got)

	got, err = Of[string]().Fn("eggs")
	require.NoError(t, err)
	assert.Equal(t, "eggs", got)
}

type celsius struct{ deg float64 }

func (celsius) StrictConstruct(v any) (any, error) {
	f, err := Float(v)
	if err != nil {
		return nil, err
	}
	return celsius{deg: f}, nil
}

func TestOf_Constructible(t *testing.T) {
	got, err := Of[celsius]().Fn(21)
	require.NoError(t, err)
	assert.Equal(t, celsius{deg: 21}, got)
}

func TestOf_UnsupportedType(t *testing.T) {
	_, err := Of[chan int]().Fn(1)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestValue_MissingTypeParameter(t *testing.T) {
	_, err := Value.Fn(1)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestTuple_Coerced(t *testing.T) {
	coerce := Tuple(Of[int64]())
	assert.Equal(t, "tuple[int64]", coerce.Name)

	got, err := coerce.Fn([]any{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)

	got, err = coerce.Fn([]any{1, int32(2), uint8(3)})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got)

	_, err = coerce.Fn([]any{1, "spam", "eggs"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTuple_PlainConversion(t *testing.T) {
	coerce := Tuple(Coercer{})
	assert.Equal(t, "tuple", coerce.Name)

	got, err := coerce.Fn([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)

	_, err = coerce.Fn(1)
	assert.ErrorIs(t, err, ErrValidation)
}
