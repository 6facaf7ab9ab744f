package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// SetPepper sets the pepper appended to passwords before Argon2id hashing.
// An empty pepper is valid and leaves hashes unpeppered.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
}

// GetPepper returns the active pepper.
func GetPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// LoadPepperFile loads the pepper from file, generating and persisting a
// fresh one when the file does not exist yet.
func LoadPepperFile(file string) error {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return err
	}

	b, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return err
		}
		generated := base64.RawURLEncoding.EncodeToString(raw)
		if err := os.WriteFile(file, []byte(generated), 0600); err != nil {
			return err
		}
		SetPepper(generated)
		return nil
	}
	if err != nil {
		return err
	}

	SetPepper(string(b))
	return nil
}
