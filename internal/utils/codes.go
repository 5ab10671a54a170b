package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// размах шестизначных кодов: [100000, 999999]
const codeSpan = 900000

// NewConfirmationCode — 6-значный код из crypto/rand, равномерно по всему
// диапазону, без ведущих нулей. Короткий TTL и троттлинг переотправок —
// основная защита от перебора.
func NewConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("confirmation code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
