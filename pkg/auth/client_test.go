package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/pkg/auth"
)

func TestClientTokenRoundTrip(t *testing.T) {
	id := auth.NewClientID()

	tok, err := auth.IssueClientToken(id)
	require.NoError(t, err)

	got, err := auth.ParseClientToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestClientTokenRejectsTampering(t *testing.T) {
	tok, err := auth.IssueClientToken(auth.NewClientID())
	require.NoError(t, err)

	_, err = auth.ParseClientToken(tok + "x")
	assert.ErrorIs(t, err, auth.ErrInvalidClient)

	_, err = auth.ParseClientToken("")
	assert.ErrorIs(t, err, auth.ErrInvalidClient)
}

func TestClientTokenRejectsForeignSecretAndExpiry(t *testing.T) {
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: auth.NewClientID(),
	}).SignedString([]byte("someone-else"))
	require.NoError(t, err)
	_, err = auth.ParseClientToken(foreign)
	assert.ErrorIs(t, err, auth.ErrInvalidClient)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: auth.NewClientID(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ParseClientToken(unsigned)
	assert.ErrorIs(t, err, auth.ErrInvalidClient)

	assert.Equal(t, 365*24*time.Hour, auth.ClientTTL)
}
