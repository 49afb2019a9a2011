package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// FieldError reports a record value that cannot be converted to the model
// attribute's type.
type FieldError struct {
	Model string
	Key   string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: cannot use %v (%T): %v", e.Model, e.Key, e.Value, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var (
	errNotInteger = errors.New("not an integer")
	errNotNumber  = errors.New("not a number")
	errNotString  = errors.New("not a string")
	errNotTime    = errors.New("not a timestamp")
	errNotObject  = errors.New("not an object")
	errNotList    = errors.New("not a list")
)

// hydrator reads allow-listed keys from a record. The first conversion
// failure is kept in err and turns every later read into a no-op.
type hydrator struct {
	model string
	rec   tas.Record
	err   error
}

func newHydrator(model string, rec tas.Record) *hydrator {
	return &hydrator{model: model, rec: rec}
}

func (h *hydrator) fail(key string, v any, err error) {
	if h.err == nil {
		h.err = &FieldError{Model: h.model, Key: key, Value: v, Err: err}
	}
}

func hydrateField[T any](h *hydrator, key string, conv func(any) (T, error)) Field[T] {
	if h.err != nil {
		return Field[T]{}
	}
	v, ok := h.rec[key]
	if !ok {
		return Field[T]{}
	}
	if v == nil {
		return Null[T]()
	}
	out, err := conv(v)
	if err != nil {
		h.fail(key, v, err)
		return Field[T]{}
	}
	return Set(out)
}

func (h *hydrator) intField(key string) Field[int64] { return hydrateField(h, key, toInt64) }

func (h *hydrator) floatField(key string) Field[float64] { return hydrateField(h, key, toFloat64) }

func (h *hydrator) stringField(key string) Field[string] { return hydrateField(h, key, toString) }

func (h *hydrator) timeField(key string) Field[time.Time] { return hydrateField(h, key, toTime) }

// record returns the nested object under key; absent and null both yield
// ok == false.
func (h *hydrator) record(key string) (tas.Record, bool) {
	if h.err != nil {
		return nil, false
	}
	v, present := h.rec[key]
	if !present || v == nil {
		return nil, false
	}
	r, err := asRecord(v)
	if err != nil {
		h.fail(key, v, err)
		return nil, false
	}
	return r, true
}

// list returns the nested list of objects under key; absent and null both
// yield an empty slice.
func (h *hydrator) list(key string) []tas.Record {
	if h.err != nil {
		return nil
	}
	v, present := h.rec[key]
	if !present || v == nil {
		return []tas.Record{}
	}
	items, err := asList(v)
	if err != nil {
		h.fail(key, v, err)
		return nil
	}
	return items
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, errNotInteger
		}
		return floatToInt64(f)
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case float64:
		return floatToInt64(x)
	}
	return 0, errNotInteger
}

// floatToInt64 accepts whole numbers within the int64 range.
func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errNotInteger
	}
	return int64(f), nil
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, errNotNumber
		}
		return f, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	}
	return 0, errNotNumber
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errNotString
	}
	return s, nil
}

// localTimestamp is RFC 3339 without the zone, fraction optional.
const localTimestamp = "2006-01-02T15:04:05.999999999"

func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
			return t, nil
		}
		// Some services drop the zone; those dates are UTC.
		if t, err := time.ParseInLocation(localTimestamp, x, time.UTC); err == nil {
			return t, nil
		}
		return time.Time{}, errNotTime
	}
	return time.Time{}, errNotTime
}

func asRecord(v any) (tas.Record, error) {
	switch x := v.(type) {
	case tas.Record:
		return x, nil
	case map[string]any:
		return tas.Record(x), nil
	}
	return nil, errNotObject
}

func asList(v any) ([]tas.Record, error) {
	switch x := v.(type) {
	case []tas.Record:
		return x, nil
	case []any:
		out := make([]tas.Record, 0, len(x))
		for _, item := range x {
			r, err := asRecord(item)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	}
	return nil, errNotList
}

// put writes f into rec under key: absent fields are left out, null fields
// become nil.
func put[T any](rec tas.Record, key string, f Field[T]) {
	switch {
	case !f.Present:
	case !f.Valid:
		rec[key] = nil
	default:
		rec[key] = f.V
	}
}

func putTime(rec tas.Record, key string, f Field[time.Time]) {
	switch {
	case !f.Present:
	case !f.Valid:
		rec[key] = nil
	default:
		rec[key] = f.V.UTC().Format(time.RFC3339Nano)
	}
}

// localError marks a record the caller handed in as unusable.
func localError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, tas.ErrInvalidArgument, err)
}

// remoteError marks a record returned by the service as unusable.
func remoteError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, &tas.ProtocolError{Reason: "unexpected record shape", Err: err})
}
