package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Purpose selects which slot on the user record holds the code.
type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeReset    Purpose = "reset"
)

const (
	Length = 6
	TTL    = 5 * time.Minute
)

var space = big.NewInt(1000000)

// Generate returns a uniform 6-digit code, leading zeros kept.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, space)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
