package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	token, err := GenerateJWT(id, "secret-a")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := VerifyJWT(token, "secret-a")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	token, err := GenerateJWT(primitive.NewObjectID().Hex(), "secret-a")
	require.NoError(t, err)

	_, err = VerifyJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	_, err := VerifyJWT("not.a.token", "secret-a")
	assert.Error(t, err)
}
