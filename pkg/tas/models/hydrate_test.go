package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{name: "json integer", in: json.Number("17033"), want: 17033},
		{name: "json whole float", in: json.Number("5.0"), want: 5},
		{name: "json exponent", in: json.Number("1e3"), want: 1000},
		{name: "json fraction", in: json.Number("1.5"), wantErr: true},
		{name: "json above int64", in: json.Number("1e20"), wantErr: true},
		{name: "json below int64", in: json.Number("-1e20"), wantErr: true},
		{name: "json 2^63", in: json.Number("9223372036854775808.0"), wantErr: true},
		{name: "float above int64", in: 1e19, wantErr: true},
		{name: "float min int64", in: float64(-1 << 63), want: -1 << 63},
		{name: "native int", in: 42, want: 42},
		{name: "text", in: "42", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toInt64(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errNotInteger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToTime(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    time.Time
		wantErr bool
	}{
		{name: "rfc 3339", in: "2015-01-20T06:00:00Z", want: time.Date(2015, 1, 20, 6, 0, 0, 0, time.UTC)},
		{name: "fraction", in: "2015-01-20T06:00:00.5Z", want: time.Date(2015, 1, 20, 6, 0, 0, 5e8, time.UTC)},
		{name: "no zone is utc", in: "2015-01-20T06:00:00", want: time.Date(2015, 1, 20, 6, 0, 0, 0, time.UTC)},
		{name: "no zone with fraction", in: "2015-01-20T06:00:00.123", want: time.Date(2015, 1, 20, 6, 0, 0, 123e6, time.UTC)},
		{name: "date only", in: "2015-01-20", wantErr: true},
		{name: "garbage", in: "next year", wantErr: true},
		{name: "number", in: json.Number("1421733600"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toTime(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errNotTime)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}
