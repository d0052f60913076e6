package clients

import (
	"testing"

	"github.com/mlevshin/authgate/internal/server/models"
	"github.com/stretchr/testify/require"
)

func TestLookup_ExactMatchOnly(t *testing.T) {
	reg := NewRegistry([]models.Client{
		{ID: "svc-billing", Secret: "s3cret"},
		{ID: "svc-mailer", Secret: "other"},
	})

	tests := []struct {
		name   string
		id     string
		secret string
		found  bool
	}{
		{"both match", "svc-billing", "s3cret", true},
		{"second entry matches", "svc-mailer", "other", true},
		{"wrong secret", "svc-billing", "nope", false},
		{"wrong id", "svc-unknown", "s3cret", false},
		{"crossed pair", "svc-billing", "other", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Lookup(tt.id, tt.secret)
			if tt.found {
				require.NotNil(t, got)
				require.Equal(t, tt.id, got.ID)
			} else {
				require.Nil(t, got)
			}
		})
	}
}

func TestLookup_EmptyRegistry(t *testing.T) {
	reg := NewRegistry(nil)
	require.Nil(t, reg.Lookup("any", "any"))
}

func TestNewRegistry_CopiesInput(t *testing.T) {
	src := []models.Client{{ID: "a", Secret: "b"}}
	reg := NewRegistry(src)
	src[0].Secret = "mutated"
	require.NotNil(t, reg.Lookup("a", "b"))
	require.Nil(t, reg.Lookup("a", "mutated"))
}
