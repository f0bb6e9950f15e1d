package aterm

import (
	"github.com/cnf/structhash"
)

// fingerprintVersion is the structhash version of the term layout.
// Increment it whenever the fields of a term type change.
const fingerprintVersion = 1

type fingerprinted struct {
	Kind string
	Term Term
}

// Fingerprint returns a stable structural hash of a term. Terms with equal
// fingerprints are structurally equal (see Equal), barring hash collisions.
func Fingerprint(t Term) string {
	if t == nil {
		return ""
	}
	h, err := structhash.Hash(fingerprinted{Kind: t.Kind().String(), Term: t}, fingerprintVersion)
	if err != nil {
		// structhash reports errors for malformed hash tags only
		panic(err)
	}
	return h
}
