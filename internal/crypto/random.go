package crypto

import (
	"crypto/rand"
	"io"
)

// Reader is the randomness source for every generated salt, nonce and seed.
// Tests may swap it; production code must leave it as crypto/rand.
var Reader io.Reader = rand.Reader

// RandomBytes fills b from Reader.
func RandomBytes(b []byte) error {
	_, err := io.ReadFull(Reader, b)
	return err
}
