package core

import (
	"fmt"
	"time"
)

// Kind identifies the scalar kind carried by a Value.
type Kind uint8

// Value kinds.
const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindText
	KindBytes
	KindTimestamp
)

var kindNames = [...]string{
	KindBool:      "bool",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindUint8:     "uint8",
	KindUint16:    "uint16",
	KindUint32:    "uint32",
	KindUint64:    "uint64",
	KindText:      "text",
	KindBytes:     "bytes",
	KindTimestamp: "timestamp",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind returns the kind with the given String name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsSigned reports whether the kind is a signed integer.
func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

// IsUnsigned reports whether the kind is an unsigned integer.
func (k Kind) IsUnsigned() bool {
	return k >= KindUint8 && k <= KindUint64
}

// Value is a scalar bound into a statement.
// A null Value still carries the kind it would have held, so binders can
// produce a typed NULL instead of an untyped one.
//
// Values are immutable. The zero Value is a non-null false boolean.
type Value struct {
	kind  Kind
	null  bool
	num   uint64 // bool, signed (two's complement) and unsigned payloads
	text  string
	bytes []byte
	time  time.Time
}

// Null returns a typed null of the given kind.
func Null(kind Kind) Value { return Value{kind: kind, null: true} }

// Bool returns a boolean value.
func Bool(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// Int8 returns an int8 value.
func Int8(v int8) Value { return Value{kind: KindInt8, num: uint64(int64(v))} }

// Int16 returns an int16 value.
func Int16(v int16) Value { return Value{kind: KindInt16, num: uint64(int64(v))} }

// Int32 returns an int32 value.
func Int32(v int32) Value { return Value{kind: KindInt32, num: uint64(int64(v))} }

// Int64 returns an int64 value.
func Int64(v int64) Value { return Value{kind: KindInt64, num: uint64(v)} }

// Uint8 returns a uint8 value.
func Uint8(v uint8) Value { return Value{kind: KindUint8, num: uint64(v)} }

// Uint16 returns a uint16 value.
func Uint16(v uint16) Value { return Value{kind: KindUint16, num: uint64(v)} }

// Uint32 returns a uint32 value.
func Uint32(v uint32) Value { return Value{kind: KindUint32, num: uint64(v)} }

// Uint64 returns a uint64 value.
func Uint64(v uint64) Value { return Value{kind: KindUint64, num: v} }

// Text returns a text value.
func Text(v string) Value { return Value{kind: KindText, text: v} }

// Bytes returns a byte blob value. A nil slice is a null blob.
func Bytes(v []byte) Value {
	if v == nil {
		return Null(KindBytes)
	}
	return Value{kind: KindBytes, bytes: v}
}

// Timestamp returns a timestamp value.
func Timestamp(v time.Time) Value { return Value{kind: KindTimestamp, time: v} }

// Kind returns the value kind. Null values report their intended kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is a typed null.
func (v Value) IsNull() bool { return v.null }

// BoolValue returns the boolean payload.
func (v Value) BoolValue() bool { return v.num != 0 }

// Int64Value returns any signed payload widened to int64.
func (v Value) Int64Value() int64 { return int64(v.num) }

// Uint64Value returns any unsigned payload widened to uint64.
func (v Value) Uint64Value() uint64 { return v.num }

// TextValue returns the text payload.
func (v Value) TextValue() string { return v.text }

// BytesValue returns the blob payload.
func (v Value) BytesValue() []byte { return v.bytes }

// TimeValue returns the timestamp payload.
func (v Value) TimeValue() time.Time { return v.time }

// Interface returns the payload as its native Go type, or nil for a null.
func (v Value) Interface() any {
	if v.null {
		return nil
	}
	switch v.kind {
	case KindBool:
		return v.BoolValue()
	case KindInt8:
		return int8(v.Int64Value())
	case KindInt16:
		return int16(v.Int64Value())
	case KindInt32:
		return int32(v.Int64Value())
	case KindInt64:
		return v.Int64Value()
	case KindUint8:
		return uint8(v.num)
	case KindUint16:
		return uint16(v.num)
	case KindUint32:
		return uint32(v.num)
	case KindUint64:
		return v.num
	case KindText:
		return v.text
	case KindBytes:
		return v.bytes
	case KindTimestamp:
		return v.time
	default:
		return nil
	}
}

// String implements fmt.Stringer for debugging output.
func (v Value) String() string {
	if v.null {
		return "null(" + v.kind.String() + ")"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
}

// ValueOf converts a Go primitive, or a pointer to one, into a Value.
// A nil pointer becomes a null of the pointee's kind. int and uint map to
// the 64-bit kinds. The second result is false for unsupported types.
func ValueOf(x any) (Value, bool) {
	switch x := x.(type) {
	case Value:
		return x, true
	case bool:
		return Bool(x), true
	case int8:
		return Int8(x), true
	case int16:
		return Int16(x), true
	case int32:
		return Int32(x), true
	case int64:
		return Int64(x), true
	case int:
		return Int64(int64(x)), true
	case uint8:
		return Uint8(x), true
	case uint16:
		return Uint16(x), true
	case uint32:
		return Uint32(x), true
	case uint64:
		return Uint64(x), true
	case uint:
		return Uint64(uint64(x)), true
	case string:
		return Text(x), true
	case []byte:
		return Bytes(x), true
	case time.Time:
		return Timestamp(x), true
	case *bool:
		return optional(x, KindBool, Bool), true
	case *int8:
		return optional(x, KindInt8, Int8), true
	case *int16:
		return optional(x, KindInt16, Int16), true
	case *int32:
		return optional(x, KindInt32, Int32), true
	case *int64:
		return optional(x, KindInt64, Int64), true
	case *int:
		return optional(x, KindInt64, func(v int) Value { return Int64(int64(v)) }), true
	case *uint8:
		return optional(x, KindUint8, Uint8), true
	case *uint16:
		return optional(x, KindUint16, Uint16), true
	case *uint32:
		return optional(x, KindUint32, Uint32), true
	case *uint64:
		return optional(x, KindUint64, Uint64), true
	case *uint:
		return optional(x, KindUint64, func(v uint) Value { return Uint64(uint64(v)) }), true
	case *string:
		return optional(x, KindText, Text), true
	case *time.Time:
		return optional(x, KindTimestamp, Timestamp), true
	default:
		return Value{}, false
	}
}

func optional[T any](p *T, kind Kind, mk func(T) Value) Value {
	if p == nil {
		return Null(kind)
	}
	return mk(*p)
}
