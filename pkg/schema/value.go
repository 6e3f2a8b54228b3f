package schema

import (
	"reflect"
	"time"

	"github.com/leapstack-labs/leapquery/pkg/core"
)

var kindOf = map[reflect.Kind]core.Kind{
	reflect.Bool:   core.KindBool,
	reflect.Int8:   core.KindInt8,
	reflect.Int16:  core.KindInt16,
	reflect.Int32:  core.KindInt32,
	reflect.Int64:  core.KindInt64,
	reflect.Int:    core.KindInt64,
	reflect.Uint8:  core.KindUint8,
	reflect.Uint16: core.KindUint16,
	reflect.Uint32: core.KindUint32,
	reflect.Uint64: core.KindUint64,
	reflect.Uint:   core.KindUint64,
	reflect.String: core.KindText,
}

// valueKind maps a field type, after one level of pointer, to a value kind.
// Named types (type Status string) map by their underlying kind.
func valueKind(t reflect.Type) (core.Kind, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case t == timeType:
		return core.KindTimestamp, true
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return core.KindBytes, true
	}
	k, ok := kindOf[t.Kind()]
	return k, ok
}

func isSupported(t reflect.Type) bool {
	_, ok := valueKind(t)
	return ok
}

// toValue converts a field of a supported type. A nil pointer or nil byte
// slice is a typed null.
func toValue(rv reflect.Value) core.Value {
	kind, _ := valueKind(rv.Type())
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return core.Null(kind)
		}
		rv = rv.Elem()
	}

	switch kind {
	case core.KindBool:
		return core.Bool(rv.Bool())
	case core.KindInt8:
		return core.Int8(int8(rv.Int()))
	case core.KindInt16:
		return core.Int16(int16(rv.Int()))
	case core.KindInt32:
		return core.Int32(int32(rv.Int()))
	case core.KindInt64:
		return core.Int64(rv.Int())
	case core.KindUint8:
		return core.Uint8(uint8(rv.Uint()))
	case core.KindUint16:
		return core.Uint16(uint16(rv.Uint()))
	case core.KindUint32:
		return core.Uint32(uint32(rv.Uint()))
	case core.KindUint64:
		return core.Uint64(rv.Uint())
	case core.KindText:
		return core.Text(rv.String())
	case core.KindBytes:
		return core.Bytes(rv.Bytes())
	case core.KindTimestamp:
		return core.Timestamp(rv.Interface().(time.Time))
	default:
		return core.Null(kind)
	}
}
