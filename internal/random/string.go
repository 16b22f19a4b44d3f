package random

import (
	"crypto/rand"
	"encoding/hex"
)

// HexString returns n random bytes from crypto/rand encoded as 2n hex
// characters.
func HexString(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
