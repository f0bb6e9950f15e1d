package aterm

import "fmt"

// Equal is deep structural equality of terms, including annotations.
// Literals of different kinds are never equal, even if their values are
// numerically the same.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || !a.Annotation().Equal(b.Annotation()) {
		return false
	}
	switch x := a.(type) {
	case Leaf:
		return x.Label == b.(Leaf).Label
	case Int:
		return x.Value == b.(Int).Value
	case Real:
		return x.Value == b.(Real).Value
	case String:
		return x.Value == b.(String).Value
	case Appl:
		y := b.(Appl)
		return len(x.Args) == len(y.Args) && EqualLeaves(x.Head, y.Head) && equalTerms(x.Args, y.Args)
	case Tuple:
		return equalTerms(x.Args, b.(Tuple).Args)
	case List:
		return equalTerms(x.Elts, b.(List).Elts)
	case Placeholder:
		y := b.(Placeholder)
		return x.Hole == y.Hole && equalTerms(x.Subpatterns, y.Subpatterns)
	}
	panic(fmt.Sprintf("unknown term type %T", a))
}

// EqualLeaves compares two leaves by label and annotation.
func EqualLeaves(a, b Leaf) bool {
	return a.Label == b.Label && a.Annot.Equal(b.Annot)
}

func equalTerms(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
