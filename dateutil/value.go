package dateutil

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

type valueKind int

const (
	kindNone valueKind = iota
	kindTime
	kindMillis
	kindText
)

// Value is a timestamp-like input: a time.Time, a count of milliseconds
// since the Unix epoch, or text to be parsed.
type Value struct {
	kind   valueKind
	time   time.Time
	millis int64
	text   string
}

func TimeValue(t time.Time) Value {
	return Value{kind: kindTime, time: t}
}

func MillisValue(ms int64) Value {
	return Value{kind: kindMillis, millis: ms}
}

func TextValue(s string) Value {
	return Value{kind: kindText, text: s}
}

// ValueOf converts a loosely typed input into a Value. It accepts
// time.Time, *time.Time, *timestamppb.Timestamp, string, integer kinds
// (milliseconds) and finite floats (truncated to milliseconds).
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case Value:
		return v, nil
	case time.Time:
		return TimeValue(v), nil
	case *time.Time:
		if v == nil {
			return Value{}, fmt.Errorf("%w: nil time", ErrNoValue)
		}
		return TimeValue(*v), nil
	case *timestamppb.Timestamp:
		if err := v.CheckValid(); err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrNoValue, err)
		}
		return TimeValue(v.AsTime()), nil
	case string:
		return TextValue(v), nil
	case int:
		return MillisValue(int64(v)), nil
	case int32:
		return MillisValue(int64(v)), nil
	case int64:
		return MillisValue(v), nil
	case uint32:
		return MillisValue(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %d overflows milliseconds", ErrNoValue, v)
		}
		return MillisValue(int64(v)), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %v is not a finite millisecond value", ErrNoValue, v)
		}
		return MillisValue(int64(v)), nil
	}
	return Value{}, fmt.Errorf("%w: unsupported input type %T", ErrNoValue, v)
}

func (v Value) IsZero() bool {
	return v.kind == kindNone
}

func (v Value) String() string {
	switch v.kind {
	case kindTime:
		return v.time.Format(time.RFC3339Nano)
	case kindMillis:
		return strconv.FormatInt(v.millis, 10)
	case kindText:
		return v.text
	}
	return "<none>"
}
