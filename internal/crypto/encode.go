package crypto

import "encoding/hex"

// Hex returns lower-case hex.
func Hex(b []byte) string { return hex.EncodeToString(b) }
