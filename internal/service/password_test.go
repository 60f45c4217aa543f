package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashCredentials_VerifyRoundTrip(t *testing.T) {
	digest, err := HashCredentials("alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, VerifyCredentials("alice", "secret1", digest))
	assert.False(t, VerifyCredentials("alice", "wrong", digest))
}

func TestHashCredentials_BoundToUsername(t *testing.T) {
	// Two accounts with the same password must not share a verifiable digest.
	aliceDigest, err := HashCredentials("alice", "secret1")
	require.NoError(t, err)

	assert.False(t, VerifyCredentials("bob", "secret1", aliceDigest))
}

func TestHashCredentials_SaltedDigestsDiffer(t *testing.T) {
	first, err := HashCredentials("alice", "secret1")
	require.NoError(t, err)
	second, err := HashCredentials("alice", "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyCredentials("alice", "secret1", first))
	assert.True(t, VerifyCredentials("alice", "secret1", second))
}

func TestVerifyCredentials_MalformedDigest(t *testing.T) {
	assert.False(t, VerifyCredentials("alice", "secret1", "not-a-bcrypt-digest"))
}
