package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("WarAndPeace1869")
	require.NoError(t, err)

	assert.NotEqual(t, "WarAndPeace1869", hash)
	assert.True(t, CheckPassword(hash, "WarAndPeace1869"))
	assert.False(t, CheckPassword(hash, "AnnaKarenina1877"))
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	first, err := HashPassword("WarAndPeace1869")
	require.NoError(t, err)
	second, err := HashPassword("WarAndPeace1869")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "WarAndPeace1869"))
	assert.True(t, CheckPassword(second, "WarAndPeace1869"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "WarAndPeace1869"))
	assert.False(t, CheckPassword("", "WarAndPeace1869"))
}
