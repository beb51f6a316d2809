package zsq

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type kind uint8

const (
	kindNull kind = iota
	kindScalar
	kindList
	kindMap
	kindInvalid
)

// Value is a single call-site argument for Exec: a scalar, an ordered
// list, or a keyed map. Construct them with V, List, and Map; the zero
// Value is SQL NULL.
//
// Keeping this a closed set of variants means Flatten dispatches on a tag
// instead of reflecting over arbitrary caller types; anything the
// constructors don't accept is rejected as ErrMalformedArguments when the
// Value is used.
type Value struct {
	kind   kind
	scalar any // normalized: bools are int64 0/1
	list   []Value
	pairs  []Pair
	err    error
}

// Pair is a single key/value entry for Map. The value must be a scalar.
type Pair struct {
	Key   string
	Value Value
}

// V creates a scalar Value.
//
// Accepted types: nil, bool, string, []byte, all int and uint widths,
// float32/64, time.Time, driver.Valuer, and Value (returned as-is).
// Booleans are stored as int64 0/1, since that's the only representation
// that works across SQL engines. Anything else makes an invalid Value.
func V(v any) Value {
	switch vv := v.(type) {
	case nil:
		return Value{kind: kindNull}
	case Value:
		return vv
	case bool:
		n := int64(0)
		if vv {
			n = 1
		}
		return Value{kind: kindScalar, scalar: n}
	case int:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case int8:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case int16:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case int32:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case int64:
		return Value{kind: kindScalar, scalar: vv}
	case uint:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case uint8:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case uint16:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case uint32:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case uint64:
		return Value{kind: kindScalar, scalar: int64(vv)}
	case float32:
		return Value{kind: kindScalar, scalar: float64(vv)}
	case float64:
		return Value{kind: kindScalar, scalar: vv}
	case string:
		return Value{kind: kindScalar, scalar: vv}
	case []byte:
		return Value{kind: kindScalar, scalar: vv}
	case time.Time:
		return Value{kind: kindScalar, scalar: vv}
	case driver.Valuer:
		return Value{kind: kindScalar, scalar: vv}
	default:
		return Value{kind: kindInvalid,
			err: fmt.Errorf("%w: unsupported type %T", ErrMalformedArguments, v)}
	}
}

// List creates an ordered list Value. Elements go through V unless they
// already are a Value, so both List(1, 2, 3) and List(List(1, 2), List(3,
// 4)) work.
func List(vs ...any) Value {
	l := make([]Value, len(vs))
	for i, v := range vs {
		l[i] = V(v)
	}
	return Value{kind: kindList, list: l}
}

// Map creates a keyed map Value from pairs, preserving their order.
func Map(pairs ...Pair) Value {
	return Value{kind: kindMap, pairs: pairs}
}

// P creates a map Pair; the value goes through V.
func P(key string, v any) Pair {
	return Pair{Key: key, Value: V(v)}
}
