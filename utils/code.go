package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericCode returns a uniformly random decimal code of the given
// number of digits, zero padded.
func GenerateNumericCode(digits int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
