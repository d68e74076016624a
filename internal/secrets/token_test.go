package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestEnsureToken(t *testing.T) {
	keyring.MockInit()
	acct := TokenAccount(t.TempDir())

	_, err := GetToken(acct)
	assert.ErrorIs(t, err, ErrNoToken)

	tok, err := EnsureToken(acct)
	require.NoError(t, err)
	assert.Len(t, tok, tokenBytes*2)

	again, err := EnsureToken(acct)
	require.NoError(t, err)
	assert.Equal(t, tok, again)

	require.NoError(t, SetToken(acct, "replaced"))
	got, err := GetToken(acct)
	require.NoError(t, err)
	assert.Equal(t, "replaced", got)

	require.NoError(t, DeleteToken(acct))
	require.NoError(t, DeleteToken(acct))
	_, err = GetToken(acct)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenAccountPerDataDir(t *testing.T) {
	assert.NotEqual(t, TokenAccount(t.TempDir()), TokenAccount(t.TempDir()))
	assert.Error(t, SetToken(" ", "x"))
	assert.Error(t, SetToken("a", ""))
}
