package tas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is an untyped JSON object as returned by the service. Numbers are
// kept as json.Number so integer ids survive decoding unchanged.
type Record map[string]any

func decodeAny(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeRecord decodes a result object. A null result yields a nil Record.
func DecodeRecord(raw json.RawMessage) (Record, error) {
	if isNull(raw) {
		return nil, nil
	}
	v, err := decodeAny(raw)
	if err != nil {
		return nil, &ProtocolError{Body: raw, Reason: "decode result", Err: err}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &ProtocolError{Body: raw, Reason: fmt.Sprintf("result is %T, want object", v)}
	}
	return Record(m), nil
}

// DecodeRecords decodes a result list. A null result yields an empty slice.
func DecodeRecords(raw json.RawMessage) ([]Record, error) {
	if isNull(raw) {
		return []Record{}, nil
	}
	v, err := decodeAny(raw)
	if err != nil {
		return nil, &ProtocolError{Body: raw, Reason: "decode result", Err: err}
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &ProtocolError{Body: raw, Reason: fmt.Sprintf("result is %T, want list", v)}
	}
	out := make([]Record, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &ProtocolError{Body: raw, Reason: fmt.Sprintf("result[%d] is %T, want object", i, item)}
		}
		out = append(out, Record(m))
	}
	return out, nil
}

// decodeValue decodes any result shape, used where the service does not
// document one.
func decodeValue(raw json.RawMessage) (any, error) {
	if isNull(raw) {
		return nil, nil
	}
	v, err := decodeAny(raw)
	if err != nil {
		return nil, &ProtocolError{Body: raw, Reason: "decode result", Err: err}
	}
	return v, nil
}

// ID returns the record's "id" rendered for use in a URL path.
func (r Record) ID() (string, bool) {
	return idString(r["id"])
}

func idString(v any) (string, bool) {
	switch x := v.(type) {
	case json.Number:
		return x.String(), x.String() != ""
	case string:
		return x, x != ""
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10), true
		}
	}
	return "", false
}
