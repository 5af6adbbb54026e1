package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a bcrypt hash with a candidate password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordStrength is the result of scoring a candidate password.
type PasswordStrength struct {
	Score    int    `json:"score"` // 0 to 5
	Feedback string `json:"feedback"`
	Label    string `json:"label"` // "", "Weak", "Medium", "Strong"
}

// CheckPasswordStrength scores a password on length and character-class
// coverage. Pure function, no side effects.
func CheckPasswordStrength(password string) PasswordStrength {
	if password == "" {
		return PasswordStrength{Score: 0, Feedback: "Enter a password"}
	}

	score := 0
	var feedback []string

	if len(password) < 8 {
		feedback = append(feedback, "Password should be at least 8 characters")
	} else {
		score++
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if hasUpper {
		score++
	} else {
		feedback = append(feedback, "Add uppercase letters")
	}
	if hasLower {
		score++
	} else {
		feedback = append(feedback, "Add lowercase letters")
	}
	if hasDigit {
		score++
	} else {
		feedback = append(feedback, "Add numbers")
	}
	if hasSpecial {
		score++
	} else {
		feedback = append(feedback, "Add special characters")
	}

	var label string
	switch {
	case score == 0:
		label = ""
	case score <= 2:
		label = "Weak"
	case score <= 4:
		label = "Medium"
	default:
		label = "Strong"
	}

	msg := "Strong password"
	if len(feedback) > 0 {
		msg = strings.Join(feedback, ", ")
	}

	return PasswordStrength{Score: score, Feedback: msg, Label: label}
}
