package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost matches 10 salt rounds.
const PasswordCost = bcrypt.DefaultCost

// MaxPasswordBytes is the most bcrypt will hash; longer input is rejected,
// never truncated.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

func HashPassword(pw string) (string, error) {
	if len(pw) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
