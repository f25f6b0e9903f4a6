package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	assert.Equal(t, PairKey(a, b), PairKey(b, a))
	assert.NotEqual(t, PairKey(a, b), PairKey(a, primitive.NewObjectID()))
}

func TestDomainErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    *DomainError
		status int
	}{
		{InvalidArgument("bad input"), 400},
		{Conflict("already there"), 400},
		{NotFound("missing"), 404},
		{Forbidden("not yours"), 403},
		{Unauthorized("no token"), 401},
		{NewError(CodeUnexpected, "boom"), 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), tc.err.Message)
	}
}
