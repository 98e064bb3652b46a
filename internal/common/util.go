package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// MakeRandDigitString generates a random string of exactly n decimal digits,
// suitable for OTP codes. Leading zeros are allowed.
//
// It returns an error if the random number generator fails.
func MakeRandDigitString(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("rand read: %w", err)
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Useful for removing sensitive data such as tokens from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
