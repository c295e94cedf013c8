package types

// JunctionKind tags one derivation step.
type JunctionKind uint8

const (
	JunctionHard JunctionKind = iota + 1
	JunctionSoft
	JunctionPassword
	JunctionParent
	JunctionPlaceholder
)

// String returns the lower-case name of the kind.
func (k JunctionKind) String() string {
	switch k {
	case JunctionHard:
		return "hard"
	case JunctionSoft:
		return "soft"
	case JunctionPassword:
		return "password"
	case JunctionParent:
		return "parent"
	case JunctionPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// ChainCodeSize is the length of a normalized chain code.
const ChainCodeSize = 32

// MaxPathDepth is the deepest path this system accepts. It is a policy limit,
// not a cryptographic one.
const MaxPathDepth = 5

// Junction is one step of a derivation path. Hard, soft and password
// junctions carry a 32-byte chain code; parent and placeholder junctions carry
// none. Build junctions with the derivation package; the fields are not
// meant to be mutated after construction.
type Junction struct {
	Kind  JunctionKind `json:"kind"`
	Value string       `json:"value"`
	code  []byte
}

// NewJunction builds a junction from an already-normalized chain code.
// The code is copied.
func NewJunction(kind JunctionKind, value string, chainCode []byte) Junction {
	j := Junction{Kind: kind, Value: value}
	if kind == JunctionParent || kind == JunctionPlaceholder {
		return j
	}
	j.code = append([]byte(nil), chainCode...)
	return j
}

// ChainCode returns a copy of the junction's chain code.
func (j Junction) ChainCode() []byte {
	return append([]byte(nil), j.code...)
}

// Equal compares kind, value and chain code.
func (j Junction) Equal(other Junction) bool {
	if j.Kind != other.Kind || j.Value != other.Value || len(j.code) != len(other.code) {
		return false
	}
	for i := range j.code {
		if j.code[i] != other.code[i] {
			return false
		}
	}
	return true
}

// DerivationPath is an ordered list of junctions applied from a root key.
type DerivationPath []Junction

// Depth is the number of junctions.
func (p DerivationPath) Depth() int { return len(p) }

// Equal compares two paths junction by junction.
func (p DerivationPath) Equal(other DerivationPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
