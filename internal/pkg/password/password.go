// Package password wraps bcrypt with a byte-length cap that is applied
// identically when hashing and verifying.
package password

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest input bcrypt takes into account.
const MaxBytes = 72

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a mismatch.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password)) == nil
}

// truncate cuts the input to MaxBytes and drops a trailing partial UTF-8 sequence.
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) <= MaxBytes {
		return b
	}
	b = b[:MaxBytes]
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				b = b[:i]
			}
			break
		}
	}
	return b
}
