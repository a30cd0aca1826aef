package auth

import "golang.org/x/crypto/bcrypt"

// hashRounds is the bcrypt cost factor. Fixed; changing it only affects
// digests produced after the change, older ones keep verifying.
const hashRounds = 10

// HashPassword produces a salted one-way digest of plaintext.
// The plaintext is never stored or logged.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashRounds)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches digest.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
