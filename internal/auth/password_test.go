package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/threatlens/threatlens-api/internal/config"
)

func TestHasher_HashAndCompare(t *testing.T) {
	for _, algorithm := range []string{config.HasherBcrypt, config.HasherArgon2id} {
		t.Run(algorithm, func(t *testing.T) {
			h, err := NewPasswordHasher(algorithm, bcrypt.MinCost)
			require.NoError(t, err)

			for _, password := range []string{"pw123456", "p", "ünïcødé pässwörd", strings.Repeat("x", 64)} {
				hash, err := h.Hash(password)
				require.NoError(t, err)
				assert.NotEqual(t, password, hash)
				assert.NoError(t, h.Compare(hash, password))
				assert.ErrorIs(t, h.Compare(hash, password+"!"), ErrPasswordMismatch)
			}
		})
	}
}

func TestHasher_Salted(t *testing.T) {
	h, err := NewPasswordHasher(config.HasherArgon2id, 0)
	require.NoError(t, err)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "$argon2id$v=19$m=65536,t=3,p=4$"))
}

func TestHasher_ComparesAcrossAlgorithms(t *testing.T) {
	bcryptHasher, err := NewPasswordHasher(config.HasherBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	argonHasher, err := NewPasswordHasher(config.HasherArgon2id, 0)
	require.NoError(t, err)

	bcryptHash, err := bcryptHasher.Hash("secret")
	require.NoError(t, err)
	argonHash, err := argonHasher.Hash("secret")
	require.NoError(t, err)

	assert.NoError(t, argonHasher.Compare(bcryptHash, "secret"))
	assert.NoError(t, bcryptHasher.Compare(argonHash, "secret"))
}

func TestHasher_MalformedHash(t *testing.T) {
	h, err := NewPasswordHasher(config.HasherBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	for _, hash := range []string{"", "plaintext", "$argon2id$v=19$broken", "$argon2id$v=19$m=1,t=1,p=1$!!$!!"} {
		err := h.Compare(hash, "secret")
		assert.ErrorIs(t, err, ErrMalformedHash, hash)
		assert.NotErrorIs(t, err, ErrPasswordMismatch, hash)
	}
}

func TestNewPasswordHasher_Invalid(t *testing.T) {
	_, err := NewPasswordHasher("md5", 10)
	assert.Error(t, err)

	_, err = NewPasswordHasher(config.HasherBcrypt, 99)
	assert.Error(t, err)
}
