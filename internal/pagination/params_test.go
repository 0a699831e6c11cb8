package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "defaults", params: *NewParams()},
		{name: "alternate size", params: Params{Page: 2, PageSize: AlternatePageSize}},
		{name: "page zero", params: Params{Page: 0, PageSize: 3}, wantErr: ErrInvalidPage},
		{name: "negative page", params: Params{Page: -2, PageSize: 3}, wantErr: ErrInvalidPage},
		{name: "page size zero", params: Params{Page: 1, PageSize: 0}, wantErr: ErrPageSizeOutOfRange},
		{name: "page size too large", params: Params{Page: 1, PageSize: MaxPageSize + 1}, wantErr: ErrPageSizeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, PageSize: 3}.Offset())
	assert.Equal(t, 6, Params{Page: 3, PageSize: 3}.Offset())
	assert.Equal(t, 0, Params{Page: 0, PageSize: 3}.Offset())
}
