package adapter

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Bind converts rendered arguments into driver arguments for d. A kind the
// dialect cannot bind fails with *core.UnsupportedValueError before any
// driver call is made. Nulls are bound as sql.Null of the kind's Go type so
// drivers that care about parameter types still see one.
func Bind(d *dialect.Dialect, vals []core.Value) ([]any, error) {
	if d == nil {
		d = dialect.Default()
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		if err := d.CheckBindable(v); err != nil {
			return nil, fmt.Errorf("failed to bind argument %d: %w", i+1, err)
		}
		out[i] = bindValue(v)
	}
	return out, nil
}

func bindValue(v core.Value) any {
	if !v.IsNull() {
		return v.Interface()
	}
	switch v.Kind() {
	case core.KindBool:
		return sql.Null[bool]{}
	case core.KindInt8:
		return sql.Null[int8]{}
	case core.KindInt16:
		return sql.Null[int16]{}
	case core.KindInt32:
		return sql.Null[int32]{}
	case core.KindInt64:
		return sql.Null[int64]{}
	case core.KindUint8:
		return sql.Null[uint8]{}
	case core.KindUint16:
		return sql.Null[uint16]{}
	case core.KindUint32:
		return sql.Null[uint32]{}
	case core.KindUint64:
		return sql.Null[uint64]{}
	case core.KindText:
		return sql.Null[string]{}
	case core.KindBytes:
		return sql.Null[[]byte]{}
	case core.KindTimestamp:
		return sql.Null[time.Time]{}
	default:
		return nil
	}
}
