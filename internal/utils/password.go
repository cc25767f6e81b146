package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a plaintext password against a stored hash.
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

const specialChars = `!@#$%^&*(),.?":{}|<>`

// CheckPasswordStrength enforces the password policy: at least 8
// characters with at least one digit, one uppercase letter, one lowercase
// letter and one special character. It returns the list of unmet rules.
func CheckPasswordStrength(password string) []string {
	var problems []string

	if len(password) < 8 {
		problems = append(problems, "must be at least 8 characters long")
	}

	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasDigit {
		problems = append(problems, "must contain at least one digit")
	}
	if !hasUpper {
		problems = append(problems, "must contain at least one uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "must contain at least one lowercase letter")
	}
	if !hasSpecial {
		problems = append(problems, "must contain at least one special character")
	}

	return problems
}
