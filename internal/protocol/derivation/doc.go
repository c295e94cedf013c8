// Package derivation parses and serializes hierarchical derivation paths.
//
// Grammar (left to right, greedy):
//
//	///<text>   password junction
//	//<text>    hard junction
//	/..         parent junction (no chain code)
//	/<text>     soft junction
//
// <text> runs to the next '/' or the end of the string. Anything that does not
// match stops parsing; the rest of the input is dropped without error. Use
// IsValidSubstratePath before trusting a parsed path, and ParseWithRemainder to
// see what was dropped.
//
// Each <text> becomes a 32-byte chain code: a base-10 integer is encoded as
// 8 little-endian bytes, valid hex is decoded, anything else is taken as UTF-8.
// Short codes are zero-padded to 32 bytes and long ones are replaced by their
// BLAKE2b-256 digest.
package derivation
