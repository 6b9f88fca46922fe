package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

func CreateRandomHash() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes[:])
}

// RandomDigits returns a zero-padded numeric code of the given length,
// drawn from crypto/rand.
func RandomDigits(length int) string {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand never fails on supported platforms
		return ""
	}
	code := n.String()
	for len(code) < length {
		code = "0" + code
	}
	return code
}
