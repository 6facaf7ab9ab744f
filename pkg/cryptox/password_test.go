package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "admin"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "sEnh@çãõ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, IsArgon2id(hash), "hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Contains(t, parts[3], "m=")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"wrong-password", "Correct-Password", "correct-password ", "", strings.Repeat("x", 10000)} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrMismatch)
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$scrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated bcrypt", "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("test-password", tt.invalidHash), ErrInvalidHash)
		})
	}
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, VerifyPassword("admin", string(raw)))
	require.ErrorIs(t, VerifyPassword("wrong", string(raw)), ErrMismatch)
}

func TestPepperChangesHash(t *testing.T) {
	SetPepper("")
	hash, err := HashPassword("admin")
	require.NoError(t, err)

	SetPepper("pepper")
	defer SetPepper("")

	require.ErrorIs(t, VerifyPassword("admin", hash), ErrMismatch)
}

func TestLoadPepperFile(t *testing.T) {
	defer SetPepper("")
	path := filepath.Join(t.TempDir(), "secrets", "pepper")

	// First load generates and persists
	require.NoError(t, LoadPepperFile(path))
	first := GetPepper()
	require.NotEmpty(t, first)

	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, string(stored))

	// Second load reads the same value back
	SetPepper("")
	require.NoError(t, LoadPepperFile(path))
	require.Equal(t, first, GetPepper())
}

func TestVerifySecret(t *testing.T) {
	t.Run("plain secret", func(t *testing.T) {
		require.NoError(t, VerifySecret("@ngul@r0", "@ngul@r0"))
		require.ErrorIs(t, VerifySecret("@ngul@r", "@ngul@r0"), ErrMismatch)
	})

	t.Run("bcrypt secret", func(t *testing.T) {
		raw, err := bcrypt.GenerateFromPassword([]byte("@ngul@r0"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, VerifySecret("@ngul@r0", string(raw)))
		require.ErrorIs(t, VerifySecret("nope", string(raw)), ErrMismatch)
	})

	t.Run("argon2id secret", func(t *testing.T) {
		hash, err := HashPassword("@ngul@r0")
		require.NoError(t, err)
		require.NoError(t, VerifySecret("@ngul@r0", hash))
	})
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for range 20 {
		password, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, password, 16)
		require.False(t, seen[password], "duplicate password generated")
		seen[password] = true

		for _, char := range password {
			valid := (char >= 'a' && char <= 'z') ||
				(char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9')
			require.True(t, valid, "password should only contain alphanumeric characters")
		}
	}
}
