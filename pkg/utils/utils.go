package utils

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/joho/godotenv"
)

// Verification codes are uniform in [codeMin, codeMin+codeSpan).
const (
	codeMin  = 100000
	codeSpan = 900000
)

func LoadEnv(files ...string) {
	err := godotenv.Load(files...)
	if err != nil {
		// Don't fail if .env file doesn't exist
		// Environment variables can be provided via Docker Compose or system
		slog.Info(".env file not found, using system environment variables")
	}
}

// GenerateVerificationCode returns a 6-digit numeric code in [100000, 999999].
func GenerateVerificationCode() (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%d", num.Int64()+codeMin), nil
}

// IsVerificationCode reports whether code has the shape GenerateVerificationCode produces.
func IsVerificationCode(code string) bool {
	if len(code) != 6 || code[0] == '0' {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// NormalizeEmail trims and lowercases an address; emails are the user identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
