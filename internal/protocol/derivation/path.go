package derivation

import (
	"regexp"
	"strings"

	"didauth/internal/domain"
)

const (
	passwordPrefix = "///"
	hardPrefix     = "//"
	parentToken    = "/.."
	softPrefix     = "/"
	parentValue    = ".."
)

var validJunctionValue = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`)

// Parse turns s into a derivation path. It never fails: malformed input
// yields the junctions parsed so far, possibly none.
func Parse(s string) domain.DerivationPath {
	p, _ := ParseWithRemainder(s)
	return p
}

// ParseWithRemainder is Parse that also returns the unparsed suffix.
//
// TODO: decide with the path format owners whether a non-empty remainder
// should invalidate the path; Parse keeps dropping it for compatibility.
func ParseWithRemainder(s string) (domain.DerivationPath, string) {
	var path domain.DerivationPath
	rest := s
	for rest != "" {
		var (
			kind   domain.JunctionKind
			prefix string
		)
		switch {
		case strings.HasPrefix(rest, passwordPrefix):
			kind, prefix = domain.JunctionPassword, passwordPrefix
		case strings.HasPrefix(rest, hardPrefix):
			kind, prefix = domain.JunctionHard, hardPrefix
		case strings.HasPrefix(rest, parentToken):
			path = append(path, domain.NewJunction(domain.JunctionParent, parentValue, nil))
			rest = rest[len(parentToken):]
			continue
		case strings.HasPrefix(rest, softPrefix):
			kind, prefix = domain.JunctionSoft, softPrefix
		default:
			return path, rest
		}

		text := rest[len(prefix):]
		if i := strings.IndexByte(text, '/'); i >= 0 {
			text = text[:i]
		}
		if text == "" {
			return path, rest
		}
		path = append(path, domain.NewJunction(kind, text, ChainCode(text)))
		rest = rest[len(prefix)+len(text):]
	}
	return path, ""
}

// Junction builds a single junction of kind from text.
func Junction(kind domain.JunctionKind, text string) domain.Junction {
	switch kind {
	case domain.JunctionParent:
		return domain.NewJunction(kind, parentValue, nil)
	case domain.JunctionPlaceholder:
		return domain.NewJunction(kind, "", nil)
	default:
		return domain.NewJunction(kind, text, ChainCode(text))
	}
}

// String serializes p back into path syntax. Placeholders are skipped.
func String(p domain.DerivationPath) string {
	var b strings.Builder
	for _, j := range p {
		switch j.Kind {
		case domain.JunctionPassword:
			b.WriteString(passwordPrefix + j.Value)
		case domain.JunctionHard:
			b.WriteString(hardPrefix + j.Value)
		case domain.JunctionSoft:
			b.WriteString(softPrefix + j.Value)
		case domain.JunctionParent:
			b.WriteString(parentToken)
		}
	}
	return b.String()
}

// IsValid reports whether p is non-empty, no deeper than MaxPathDepth, and
// every junction value is made of [a-zA-Z0-9_/].
func IsValid(p domain.DerivationPath) bool {
	if len(p) == 0 || len(p) > domain.MaxPathDepth {
		return false
	}
	for _, j := range p {
		if !validJunctionValue.MatchString(j.Value) {
			return false
		}
	}
	return true
}

// IsValidSubstratePath parses s and applies IsValid.
func IsValidSubstratePath(s string) bool {
	return IsValid(Parse(s))
}
