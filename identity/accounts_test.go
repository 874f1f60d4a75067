package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "walls-ghosts-and-7-keys!"

func TestNewAccount(t *testing.T) {
	t.Run("validates the username", func(t *testing.T) {
		cases := []struct {
			username string
			err      error
		}{
			{"ab", ErrUsernameTooShort},
			{"a_very_long_username_indeed", ErrUsernameTooLong},
			{"bad name", ErrInvalidUsername},
		}
		for _, tc := range cases {
			_, err := NewAccount(AccountConfig{ID: uuid.New(), Username: tc.username, PlainPassword: strongPassword})
			assert.ErrorIs(t, err, tc.err, tc.username)
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		_, err := NewAccount(AccountConfig{ID: uuid.New(), Username: "curator", PlainPassword: "password"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("hashes the password", func(t *testing.T) {
		id := uuid.New()
		account, err := NewAccount(AccountConfig{ID: id, Username: "curator_1", PlainPassword: strongPassword})
		require.NoError(t, err)

		assert.Equal(t, id, account.ID)
		assert.NotEqual(t, strongPassword, account.PasswordHash)
		assert.True(t, account.VerifyPassword(strongPassword))
		assert.False(t, account.VerifyPassword("walls-ghosts-and-8-keys!"))
	})
}
