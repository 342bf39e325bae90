package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the bcrypt work factor for the admin password.
const bcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt. The plaintext is
// never stored anywhere.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
