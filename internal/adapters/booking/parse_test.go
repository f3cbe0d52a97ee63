package booking

import (
	"errors"
	"testing"

	"roomsearch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAvailableRooms(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []int64
		wantErr bool
	}{
		{name: "legacy single id", body: "{availableRooms=[1]}", want: []int64{1}},
		{name: "legacy keeps service order", body: "{availableRooms=[7, 3, 12]}", want: []int64{7, 3, 12}},
		{name: "legacy empty list", body: "{availableRooms=[]}", want: []int64{}},
		{name: "legacy trailing newline", body: "{availableRooms=[4, 5]}\n", want: []int64{4, 5}},
		{name: "json object", body: `{"availableRooms":[2,1]}`, want: []int64{2, 1}},
		{name: "json empty list", body: `{"availableRooms":[]}`, want: []int64{}},
		{name: "legacy missing suffix", body: "{availableRooms=[1, 2", wantErr: true},
		{name: "legacy separator without space", body: "{availableRooms=[1,2]}", wantErr: true},
		{name: "legacy non numeric id", body: "{availableRooms=[a]}", wantErr: true},
		{name: "legacy zero id", body: "{availableRooms=[0]}", wantErr: true},
		{name: "wrong key", body: "{rooms=[1]}", wantErr: true},
		{name: "json without field", body: `{"rooms":[1]}`, wantErr: true},
		{name: "json negative id", body: `{"availableRooms":[-1]}`, wantErr: true},
		{name: "empty body", body: "", wantErr: true},
		{name: "html error page", body: "<html>oops</html>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAvailableRooms([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
