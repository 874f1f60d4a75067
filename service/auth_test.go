package service

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "violet-Harbor-93-lantern"

func TestNewAuthService(t *testing.T) {
	_, err := NewAuthService(nil, stubTokenizer{})
	assert.Error(t, err)
	_, err = NewAuthService(&memAccountRepo{}, nil)
	assert.Error(t, err)
}

func TestRegisterAndSignIn(t *testing.T) {
	repo := &memAccountRepo{}
	auth, err := NewAuthService(repo, stubTokenizer{})
	require.NoError(t, err)

	require.NoError(t, auth.Register("curator_1", strongPassword))
	assert.ErrorIs(t, auth.Register("curator_1", strongPassword), i.ErrUsernameConflict)

	account, token, err := auth.SignIn("curator_1", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, "curator_1", account.Username)
	assert.Equal(t, "token-for-curator_1", token)

	_, _, err = auth.SignIn("curator_1", "wrong-password")
	assert.ErrorIs(t, err, identity.ErrWrongCredentials)

	_, _, err = auth.SignIn("nobody", strongPassword)
	assert.ErrorIs(t, err, identity.ErrWrongCredentials)
}

func TestRegisterValidatesAccount(t *testing.T) {
	auth, err := NewAuthService(&memAccountRepo{}, stubTokenizer{})
	require.NoError(t, err)

	assert.ErrorIs(t, auth.Register("ab", strongPassword), identity.ErrUsernameTooShort)
	assert.ErrorIs(t, auth.Register("bad name", strongPassword), identity.ErrInvalidUsername)
	assert.ErrorIs(t, auth.Register("curator_2", "password"), identity.ErrWeakPassword)
}
