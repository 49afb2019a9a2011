package tas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantResult string
		wantErr    error
		wantMsg    string
	}{
		{name: "success object", status: 200, body: `{"status":"success","result":{"username":"u"},"message":null}`, wantResult: `{"username":"u"}`},
		{name: "success null result", status: 200, body: okNull, wantResult: "null"},
		{name: "success empty list", status: 200, body: `{"status":"success","result":[]}`, wantResult: "[]"},
		{name: "success without result key", status: 200, body: `{"status":"success"}`, wantResult: "null"},
		{name: "error on 200", status: 200, body: `{"status":"error","result":null,"message":"Does not exist"}`, wantErr: ErrRemote, wantMsg: "Does not exist"},
		{name: "error on 404", status: 404, body: `{"status":"error","message":"User not found"}`, wantErr: ErrRemote, wantMsg: "User not found"},
		{name: "error on 500", status: 500, body: `{"status":"error","message":"boom"}`, wantErr: ErrRemote, wantMsg: "boom"},
		{name: "unknown status value", status: 200, body: `{"status":"fail","message":"nope"}`, wantErr: ErrRemote, wantMsg: "nope"},
		{name: "error without message", status: 400, body: `{"status":"error"}`, wantErr: ErrRemote, wantMsg: ""},
		{name: "html 502", status: 502, body: `<html>Bad Gateway</html>`, wantErr: ErrTransport},
		{name: "empty 503", status: 503, body: ``, wantErr: ErrTransport},
		{name: "json without status on 500", status: 500, body: `{"error":"internal"}`, wantErr: ErrTransport},
		{name: "not json on 200", status: 200, body: `OK`, wantErr: ErrProtocol},
		{name: "empty 200", status: 200, body: "  ", wantErr: ErrProtocol},
		{name: "missing status on 200", status: 200, body: `{"result":1}`, wantErr: ErrProtocol},
		{name: "array body on 200", status: 200, body: `[1,2]`, wantErr: ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ResolveEnvelope(tt.status, []byte(tt.body))
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantResult, string(raw))
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			for _, other := range []error{ErrRemote, ErrTransport, ErrProtocol, ErrInvalidArgument} {
				if other != tt.wantErr {
					assert.NotErrorIs(t, err, other)
				}
			}
			if tt.wantErr == ErrRemote {
				var re *RemoteError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, tt.wantMsg, re.Message)
				assert.Equal(t, tt.status, re.StatusCode)
			}
			if tt.wantErr == ErrTransport {
				var te *TransportError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, tt.status, te.StatusCode)
				assert.Equal(t, tt.body, string(te.Body))
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	for raw, want := range map[string]bool{
		"null": false, "false": false, "0": false, `""`: false, "[]": false, "{}": false,
		"true": true, "1": true, `"token"`: true, `{"a":1}`: true, "[0]": true,
	} {
		assert.Equal(t, want, truthy([]byte(raw)), raw)
	}
	assert.False(t, truthy(nil))
}

func TestNotFalse(t *testing.T) {
	assert.False(t, notFalse([]byte("false")))
	assert.True(t, notFalse([]byte("null")))
	assert.True(t, notFalse([]byte("true")))
	assert.True(t, notFalse([]byte(`"ok"`)))
}
