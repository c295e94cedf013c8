package crypto

import (
	"runtime"

	"didauth/internal/util/memzero"
)

// Wipe zeroes the provided buffers. This is best-effort and aims to reduce
// the chance of the compiler eliding the write.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		memzero.Zero(b)
	}
	runtime.KeepAlive(bufs)
}
