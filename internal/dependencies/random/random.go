package random

import (
	"crypto/rand"
	"math/big"
)

// Random generates the secrets the backend signs tokens with. Mocked in tests
// so tokens are reproducible.
type Random interface {
	// String returns length characters drawn uniformly from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String returns length characters drawn uniformly from alphabet. It panics
// if the system randomness source fails.
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	n := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			panic("random: reading system randomness: " + err.Error())
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}
