package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token := EncodeToken("warns_list", "12345", 3)
	assert.Equal(t, "warns_list_12345_3", token)

	key, pos, err := DecodeToken("warns_list", token)
	require.NoError(t, err)
	assert.Equal(t, "12345", key)
	assert.Equal(t, 3, pos)
}

func TestTokenKeyWithUnderscores(t *testing.T) {
	token := EncodeToken("warns_user", "-100123_777", 2)

	key, pos, err := DecodeToken("warns_user", token)
	require.NoError(t, err)
	assert.Equal(t, "-100123_777", key)
	assert.Equal(t, 2, pos)
}

func TestTokenNegativePosition(t *testing.T) {
	key, pos, err := DecodeToken("nav", "nav_k_-1")
	require.NoError(t, err)
	assert.Equal(t, "k", key)
	assert.Equal(t, -1, pos)
}

func TestTokenMalformed(t *testing.T) {
	cases := []struct {
		name  string
		ns    string
		token string
	}{
		{"wrong namespace", "warns_user", "hadith_abc_1"},
		{"no position", "nav", "nav_key"},
		{"empty key", "nav", "nav__1"},
		{"non numeric position", "nav", "nav_key_abc"},
		{"trailing separator", "nav", "nav_key_"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeToken(tc.ns, tc.token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
