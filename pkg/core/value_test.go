package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	i16 := int16(-3)
	s := "x"
	var nilText *string
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  Value
	}{
		{"bool", true, Bool(true)},
		{"int8", int8(-1), Int8(-1)},
		{"int", 42, Int64(42)},
		{"uint", uint(7), Uint64(7)},
		{"uint16", uint16(9), Uint16(9)},
		{"string", "Dune", Text("Dune")},
		{"bytes", []byte("ab"), Bytes([]byte("ab"))},
		{"time", ts, Timestamp(ts)},
		{"pointer", &i16, Int16(-3)},
		{"string pointer", &s, Text("x")},
		{"nil pointer", nilText, Null(KindText)},
		{"value passes through", Uint32(5), Uint32(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValueOf(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ValueOf(3.14)
	assert.False(t, ok)
	_, ok = ValueOf(struct{}{})
	assert.False(t, ok)
}

func TestValueAccessors(t *testing.T) {
	assert.Equal(t, int64(-128), Int8(-128).Int64Value())
	assert.Equal(t, uint64(18446744073709551615), Uint64(18446744073709551615).Uint64Value())
	assert.True(t, Bool(true).BoolValue())
	assert.False(t, Bool(false).BoolValue())
	assert.Equal(t, "Dune", Text("Dune").TextValue())

	assert.Equal(t, int8(-5), Int8(-5).Interface())
	assert.Equal(t, uint32(5), Uint32(5).Interface())
	assert.Nil(t, Null(KindInt64).Interface())

	n := Bytes(nil)
	assert.True(t, n.IsNull())
	assert.Equal(t, KindBytes, n.Kind())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "int8(5)", Int8(5).String())
	assert.Equal(t, "null(uint64)", Null(KindUint64).String())
	assert.Equal(t, "text(a)", Text("a").String())
}

func TestKind(t *testing.T) {
	assert.True(t, KindInt32.IsSigned())
	assert.False(t, KindUint32.IsSigned())
	assert.True(t, KindUint64.IsUnsigned())
	assert.False(t, KindText.IsUnsigned())
	assert.Equal(t, "timestamp", KindTimestamp.String())
	assert.Equal(t, "kind(99)", Kind(99).String())

	for k := KindBool; k <= KindTimestamp; k++ {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("float64")
	assert.False(t, ok)
}

func TestUnsupportedValueError(t *testing.T) {
	var err error = &UnsupportedValueError{Kind: KindUint64, Backend: "postgres"}
	assert.Equal(t, "unsupported value for postgres: uint64 cannot be bound", err.Error())

	err = &UnsupportedValueError{Kind: KindUint8, Null: true, Backend: "postgres"}
	assert.Equal(t, "unsupported value for postgres: null uint8 cannot be bound", err.Error())

	var target *UnsupportedValueError
	assert.True(t, errors.As(err, &target))
}

func TestAdapterConfigOption(t *testing.T) {
	cfg := AdapterConfig{Options: map[string]string{"driver": "pq", "empty": ""}}
	assert.Equal(t, "pq", cfg.Option("driver", "pgx"))
	assert.Equal(t, "x", cfg.Option("empty", "x"))
	assert.Equal(t, "d", cfg.Option("missing", "d"))
	assert.Equal(t, "d", AdapterConfig{}.Option("missing", "d"))
}
