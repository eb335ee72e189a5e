package utils

import (
	"github.com/matthewhartstonge/argon2"
)

var argonConfig = argon2.DefaultConfig()

// HashPassword produces the self-describing encoded form stored in
// users.password; parameters travel inside the hash, so tuning argonConfig
// never invalidates existing credentials.
func HashPassword(password string) (string, error) {
	encoded, err := argonConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
