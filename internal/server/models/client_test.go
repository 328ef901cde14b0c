package models

import (
	"testing"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Client
		missing []string
	}{
		{"ok", Client{ID: "1", Email: "a@b.c", Mobile: "x"}, nil},
		{"no id", Client{Email: "a@b.c", Mobile: "x"}, []string{"id"}},
		{"nothing", Client{}, []string{"id", "email", "mobile"}},
		{"no mobile", Client{ID: "1", Email: "a@b.c"}, []string{"mobile"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrorValidation)
			var verr *common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Missing)
		})
	}
}

func TestIsFixedField(t *testing.T) {
	for _, f := range []string{"id", "email", "mobile"} {
		assert.True(t, IsFixedField(f), f)
	}
	for _, f := range []string{"", "Email", "company", "information"} {
		assert.False(t, IsFixedField(f), f)
	}
}
