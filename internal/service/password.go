package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed; changing it only affects newly stored hashes.
const bcryptCost = 12

// HashCredentials hashes the concatenation of username and password. Binding
// the hash to the username means two accounts with the same password never
// share a digest.
func HashCredentials(username string, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(username+password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyCredentials reports whether username+password matches the stored
// digest.
func VerifyCredentials(username string, password string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(username+password)) == nil
}
