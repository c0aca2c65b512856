package gateway

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc([]byte(payload)) + "." +
		enc([]byte("sig"))
}

func TestDecodeOwnerID(t *testing.T) {
	cases := []struct {
		name   string
		token  string
		wantID int64
		wantOK bool
	}{
		{"string claim", "", 42, true},
		{"numeric claim", "", 7, true},
		{"empty token", "", 0, false},
		{"not a jwt", "just-some-opaque-token", 0, false},
		{"garbage payload", "a.b.c", 0, false},
	}
	cases[0].token = testToken(t, `{"UserId":"42","exp":9999999999}`)
	cases[1].token = testToken(t, `{"UserId":7}`)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := DecodeOwnerID(tc.token)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestDecodeOwnerIDNonNumericClaim(t *testing.T) {
	id, ok := DecodeOwnerID(testToken(t, `{"UserId":"abc"}`))
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "token")
	s := NewCredentialStore(path)
	assert.Empty(t, s.Token())

	token := testToken(t, `{"UserId":"5"}`)
	require.NoError(t, s.Set(token))
	assert.Equal(t, token, s.Token())

	// A fresh store sees the persisted token.
	again := NewCredentialStore(path)
	assert.Equal(t, token, again.Token())
	id, ok := again.OwnerID()
	assert.True(t, ok)
	assert.EqualValues(t, 5, id)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.Empty(t, NewCredentialStore(path).Token())
	require.NoError(t, s.Clear(), "clearing twice is fine")
}
