package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenOTPCode generates a secure random 6-digit code as a zero-padded string
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
