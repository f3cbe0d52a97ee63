package helpers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *int
		wantErr bool
	}{
		{name: "missing", raw: "", want: nil},
		{name: "value", raw: "capacity=20", want: intPtr(20)},
		{name: "zero", raw: "capacity=0", want: intPtr(0)},
		{name: "negative parses", raw: "capacity=-3", want: intPtr(-3)},
		{name: "blank", raw: "capacity=", want: nil},
		{name: "not a number", raw: "capacity=ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)
			got, err := QueryInt(q, "capacity")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryLocalDateTime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{name: "with seconds", raw: "startsAt=2021-12-01T09:20:00", want: time.Date(2021, 12, 1, 9, 20, 0, 0, time.UTC)},
		{name: "without seconds", raw: "startsAt=2021-12-01T09:20", want: time.Date(2021, 12, 1, 9, 20, 0, 0, time.UTC)},
		{name: "fractional seconds", raw: "startsAt=2021-12-01T09:20:05.5", want: time.Date(2021, 12, 1, 9, 20, 5, 500000000, time.UTC)},
		{name: "missing", raw: "", wantNil: true},
		{name: "date only", raw: "startsAt=2021-12-01", wantErr: true},
		{name: "garbage", raw: "startsAt=tomorrow", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)
			got, err := QueryLocalDateTime(q, "startsAt", time.UTC)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
		})
	}
}

func TestQueryList(t *testing.T) {
	q, err := url.ParseQuery("equipment=Computer&equipment=Whiteboard,%20Beamer&equipment=&equipment=%20,")
	require.NoError(t, err)
	assert.Equal(t, []string{"Computer", "Whiteboard", "Beamer"}, QueryList(q, "equipment"))
	assert.Nil(t, QueryList(q, "missing"))
}

func TestQueryString(t *testing.T) {
	q, err := url.ParseQuery("buildingName=ewi&blank=%20")
	require.NoError(t, err)
	require.NotNil(t, QueryString(q, "buildingName"))
	assert.Equal(t, "ewi", *QueryString(q, "buildingName"))
	assert.Nil(t, QueryString(q, "blank"))
	assert.Nil(t, QueryString(q, "missing"))
}

func intPtr(v int) *int { return &v }
