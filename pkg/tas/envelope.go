package tas

import (
	"bytes"
	"encoding/json"
)

const statusSuccess = "success"

type envelope struct {
	Status  *string         `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message *string         `json:"message"`
}

// ResolveEnvelope interprets a {status, result, message} response and returns
// the raw result on success. It is the single place where the outcome of a
// REST call is classified:
//
//   - non-2xx without a JSON envelope: *TransportError
//   - status "success": result, which may be null or an empty list
//   - any other status: *RemoteError with the server message, whatever the
//     HTTP status code was
//   - 2xx that is not JSON or lacks "status": *ProtocolError
func ResolveEnvelope(statusCode int, body []byte) (json.RawMessage, error) {
	ok2xx := statusCode >= 200 && statusCode < 300

	var env envelope
	if len(bytes.TrimSpace(body)) == 0 {
		if !ok2xx {
			return nil, &TransportError{StatusCode: statusCode, Body: body}
		}
		return nil, &ProtocolError{StatusCode: statusCode, Body: body, Reason: "empty response body"}
	}
	if err := json.Unmarshal(body, &env); err != nil {
		if !ok2xx {
			return nil, &TransportError{StatusCode: statusCode, Body: body}
		}
		return nil, &ProtocolError{StatusCode: statusCode, Body: body, Reason: "response is not a JSON envelope", Err: err}
	}
	if env.Status == nil {
		if !ok2xx {
			return nil, &TransportError{StatusCode: statusCode, Body: body}
		}
		return nil, &ProtocolError{StatusCode: statusCode, Body: body, Reason: `envelope has no "status" field`}
	}

	if *env.Status != statusSuccess {
		msg := ""
		if env.Message != nil {
			msg = *env.Message
		}
		return nil, &RemoteError{StatusCode: statusCode, Message: msg}
	}

	if len(env.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return env.Result, nil
}

// isNull reports whether raw is absent or the JSON literal null.
func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// truthy applies the usual falsy rules to a result: null, false, 0, "",
// empty list and empty object are false.
func truthy(raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	v, err := decodeAny(raw)
	if err != nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}
	return true
}

// notFalse treats every successful result as a yes except a literal false.
func notFalse(raw json.RawMessage) bool {
	return !bytes.Equal(bytes.TrimSpace(raw), []byte("false"))
}
