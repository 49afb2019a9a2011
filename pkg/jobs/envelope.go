package jobs

import (
	"bytes"
	"encoding/json"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

type envelope struct {
	Jobs    json.RawMessage `json:"jobs"`
	Message *string         `json:"message"`
}

// resolveJobs reads the jobs endpoint's answer. A 2xx carries the list under
// "jobs"; anything else is a failure, reported as a *tas.RemoteError when
// the body has a message and as a *tas.TransportError when it does not.
func resolveJobs(statusCode int, body []byte) (json.RawMessage, error) {
	ok2xx := statusCode >= 200 && statusCode < 300

	var env envelope
	err := json.Unmarshal(body, &env)
	if len(bytes.TrimSpace(body)) == 0 || err != nil {
		if !ok2xx {
			return nil, &tas.TransportError{StatusCode: statusCode, Body: body}
		}
		return nil, &tas.ProtocolError{StatusCode: statusCode, Body: body, Reason: "response is not JSON", Err: err}
	}

	if !ok2xx {
		if env.Message != nil {
			return nil, &tas.RemoteError{StatusCode: statusCode, Message: *env.Message}
		}
		return nil, &tas.TransportError{StatusCode: statusCode, Body: body}
	}
	if len(env.Jobs) == 0 {
		return nil, &tas.ProtocolError{StatusCode: statusCode, Body: body, Reason: `response has no "jobs" field`}
	}
	return env.Jobs, nil
}
