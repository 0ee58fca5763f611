package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math"
)

// GenerateVerificationToken returns a random 64-character hex token.
func GenerateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Percent returns completed/total as a rounded integer percentage; 0 when total is 0.
func Percent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
