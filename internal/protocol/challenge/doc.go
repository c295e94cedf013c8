// Package challenge seals and opens one-time authentication challenges.
//
// It uses NaCl secretbox (XSalsa20 stream cipher with a Poly1305 tag) with a
// 32-byte key and a fresh 24-byte random nonce per Seal. The nonce is not
// secret and travels next to the ciphertext. Open fails, never returning
// partial plaintext, when the tag does not verify.
package challenge
