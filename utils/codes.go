package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

const refCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferenceCode builds codes like "SF-7K2M9QAB" from crypto/rand,
// using rand.Int to avoid modulo bias.
func GenerateReferenceCode(prefix string, n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(refCodeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(refCodeCharset[num.Int64()])
	}
	if prefix == "" {
		return sb.String(), nil
	}
	return strings.ToUpper(prefix) + "-" + sb.String(), nil
}
