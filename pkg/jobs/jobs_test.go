package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gotas/internal/tastest"
	"github.com/dmitrijs2005/gotas/pkg/tas"
)

func TestQueryValues(t *testing.T) {
	base := Query{Resource: "stampede3", Start: "2024-01-01", End: "2024-01-31"}

	tests := []struct {
		name string
		mod  func(q *Query)
		want url.Values
	}{
		{
			name: "required only",
			mod:  func(*Query) {},
			want: url.Values{"resource": {"stampede3"}, "start": {"2024-01-01"}, "end": {"2024-01-31"}},
		},
		{
			name: "queue without allocation",
			mod:  func(q *Query) { q.Queue = "normal" },
			want: url.Values{"resource": {"stampede3"}, "start": {"2024-01-01"}, "end": {"2024-01-31"}, "queueName": {"NORMAL"}},
		},
		{
			name: "username without allocation",
			mod:  func(q *Query) { q.Username = "jdoe" },
			want: url.Values{"resource": {"stampede3"}, "start": {"2024-01-01"}, "end": {"2024-01-31"}, "username": {"jdoe"}},
		},
		{
			name: "everything",
			mod: func(q *Query) {
				q.AllocationID = 22119
				q.Username = "jdoe"
				q.Queue = "gpu-a100"
			},
			want: url.Values{
				"resource": {"stampede3"}, "start": {"2024-01-01"}, "end": {"2024-01-31"},
				"allocationId": {"22119"}, "username": {"jdoe"}, "queueName": {"GPU-A100"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			tt.mod(&q)
			got, err := q.values()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryValues_Required(t *testing.T) {
	for _, q := range []Query{
		{Start: "a", End: "b"},
		{Resource: "r", End: "b"},
		{Resource: "r", Start: "a"},
	} {
		_, err := q.values()
		require.ErrorIs(t, err, tas.ErrInvalidArgument)
	}
}

func TestResolveJobs(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{name: "jobs", status: 200, body: `{"jobs":[{"jobId":1}]}`, want: `[{"jobId":1}]`},
		{name: "null jobs", status: 200, body: `{"jobs":null}`, want: `null`},
		{name: "missing jobs", status: 200, body: `{"count":0}`, wantErr: tas.ErrProtocol},
		{name: "not json", status: 200, body: `jobs!`, wantErr: tas.ErrProtocol},
		{name: "message on 400", status: 400, body: `{"message":"bad date"}`, wantErr: tas.ErrRemote},
		{name: "html on 502", status: 502, body: `<html>`, wantErr: tas.ErrTransport},
		{name: "json without message on 500", status: 500, body: `{}`, wantErr: tas.ErrTransport},
		{name: "empty 500", status: 500, body: ``, wantErr: tas.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := resolveJobs(tt.status, []byte(tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestGetJobs(t *testing.T) {
	fake := tastest.New(t)
	fake.Handle(http.MethodGet, "/v1/Jobs", http.StatusOK,
		`{"jobs":[{"jobId":101,"queueName":"NORMAL","suBalance":12.5},{"jobId":102}]}`)

	c, err := NewClient(Config{
		BaseURL:     fake.URL,
		Credentials: tas.Credentials{Username: "jobs", Secret: "pw"},
	}, WithHTTPClient(fake.Client()))
	require.NoError(t, err)

	jobs, err := c.GetJobs(context.Background(), Query{
		Resource: "stampede3", Start: "2024-01-01", End: "2024-01-31", Queue: "normal",
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	id, ok := jobs[0].ID()
	assert.False(t, ok, "jobs carry jobId, not id")
	assert.Empty(t, id)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	q, err := url.ParseQuery(reqs[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "NORMAL", q.Get("queueName"))
	assert.Empty(t, q.Get("allocationId"))
	assert.Equal(t, "jobs", reqs[0].Username)
	assert.Equal(t, "pw", reqs[0].Password)
}

func TestGetJobs_RemoteMessage(t *testing.T) {
	fake := tastest.New(t)
	fake.Handle(http.MethodGet, "/v1/Jobs", http.StatusBadRequest, `{"message":"Unknown resource"}`)

	c, err := NewClient(Config{BaseURL: fake.URL}, WithHTTPClient(fake.Client()))
	require.NoError(t, err)

	_, err = c.GetJobs(context.Background(), Query{Resource: "nope", Start: "a", End: "b"})
	var re *tas.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Unknown resource", re.Message)
}

func TestGetJobs_InvalidQuerySendsNothing(t *testing.T) {
	var sent int
	c, err := NewClient(Config{BaseURL: "https://jobs.example.org/api"},
		WithTransport(tas.TransportFunc(func(context.Context, *tas.Request) (*tas.Response, error) {
			sent++
			return &tas.Response{StatusCode: 200, Body: []byte(`{"jobs":[]}`)}, nil
		})))
	require.NoError(t, err)

	_, err = c.GetJobs(context.Background(), Query{Resource: "r"})
	require.ErrorIs(t, err, tas.ErrInvalidArgument)
	assert.Zero(t, sent)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvUser, "u")
	t.Setenv(EnvPassword, "p")

	cfg := ConfigFromEnv()
	assert.Equal(t, tas.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, tas.Credentials{Username: "u", Secret: "p"}, cfg.Credentials)

	_, err := NewClient(Config{BaseURL: "not a url"})
	require.ErrorIs(t, err, tas.ErrInvalidArgument)
}
