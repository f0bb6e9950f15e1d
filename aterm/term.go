package aterm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"math"
)

// Kind is the runtime kind of a term.
type Kind int8

// Term kinds. NoKind is never returned by a valid term.
const (
	NoKind Kind = iota
	LeafKind
	IntKind
	RealKind
	StringKind
	ApplKind
	TupleKind
	ListKind
	PlaceholderKind
)

var kindNames = [...]string{"NoKind", "Leaf", "Int", "Real", "String", "Appl", "Tuple", "List", "Placeholder"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Term is the interface every ATerm kind implements. The set of
// implementations is closed: only the types of this package are terms.
type Term interface {
	Kind() Kind
	Annotation() *Annotation
	String() string
	isTerm()
}

// --- Annotations -----------------------------------------------------------

// Annotation is optional metadata attached to a term: a type tag and a list
// of auxiliary terms. Annotations are never inspected by matching, except as
// part of Leaf equality.
type Annotation struct {
	Type  string
	Terms []Term
}

// Annotate creates an annotation with an optional type tag.
func Annotate(typ string, terms ...Term) *Annotation {
	return &Annotation{Type: typ, Terms: copyTerms(terms)}
}

// IsEmpty is true for a nil annotation or one without type tag and terms.
func (a *Annotation) IsEmpty() bool {
	return a == nil || (a.Type == "" && len(a.Terms) == 0)
}

// Equal compares two annotations structurally. A nil annotation equals an
// empty one.
func (a *Annotation) Equal(b *Annotation) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() && b.IsEmpty()
	}
	return a.Type == b.Type && equalTerms(a.Terms, b.Terms)
}

// --- Leaves and literals ---------------------------------------------------

// Leaf is a named atom. Inside rule patterns a Leaf in argument position is
// a variable.
type Leaf struct {
	Label string
	Annot *Annotation
}

// Int is an integer literal.
type Int struct {
	Value int64
	Annot *Annotation
}

// Real is a floating point literal.
type Real struct {
	Value float64
	Annot *Annotation
}

// String is a string literal.
type String struct {
	Value string
	Annot *Annotation
}

// --- Composites ------------------------------------------------------------

// Appl is an application of a constructor head to an ordered list of
// arguments. Its arity is the number of arguments.
type Appl struct {
	Head  Leaf
	Args  []Term
	Annot *Annotation
}

// Tuple is an ordered grouping of terms without a head.
type Tuple struct {
	Args  []Term
	Annot *Annotation
}

// List is a sequence literal. Lists are not matched structurally against
// other lists; only a <list> placeholder matches a list.
type List struct {
	Elts  []Term
	Annot *Annotation
}

// Placeholder is a typed hole in a pattern. With subpatterns it matches
// applications only and recurses into their arguments.
type Placeholder struct {
	Hole        HoleKind
	Subpatterns []Term
	Annot       *Annotation
}

// --- Hole kinds ----------------------------------------------------------

// HoleKind names the set of term kinds a placeholder accepts.
type HoleKind string

// Placeholder kinds, as written between angle brackets.
const (
	AnyAppl        HoleKind = "appl"
	AnyStr         HoleKind = "str"
	AnyInt         HoleKind = "int"
	AnyReal        HoleKind = "real"
	AnyTerm        HoleKind = "term"
	AnyPlaceholder HoleKind = "placeholder"
	AnyList        HoleKind = "list"
)

var placeholderSets = map[HoleKind][]Kind{
	AnyAppl:        {ApplKind},
	AnyStr:         {StringKind},
	AnyInt:         {IntKind},
	AnyReal:        {RealKind},
	AnyTerm:        {LeafKind, ApplKind, StringKind, IntKind, RealKind},
	AnyPlaceholder: {PlaceholderKind},
	AnyList:        {ListKind},
}

// HoleKindFrom checks a placeholder name like "int" or "appl".
func HoleKindFrom(name string) (HoleKind, bool) {
	k := HoleKind(name)
	_, ok := placeholderSets[k]
	return k, ok
}

// Accepts is true if a term of kind k may fill a placeholder of this kind.
func (pk HoleKind) Accepts(k Kind) bool {
	for _, a := range placeholderSets[pk] {
		if a == k {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------

func (Leaf) Kind() Kind        { return LeafKind }
func (Int) Kind() Kind         { return IntKind }
func (Real) Kind() Kind        { return RealKind }
func (String) Kind() Kind      { return StringKind }
func (Appl) Kind() Kind        { return ApplKind }
func (Tuple) Kind() Kind       { return TupleKind }
func (List) Kind() Kind        { return ListKind }
func (Placeholder) Kind() Kind { return PlaceholderKind }

func (t Leaf) Annotation() *Annotation        { return t.Annot }
func (t Int) Annotation() *Annotation         { return t.Annot }
func (t Real) Annotation() *Annotation        { return t.Annot }
func (t String) Annotation() *Annotation      { return t.Annot }
func (t Appl) Annotation() *Annotation        { return t.Annot }
func (t Tuple) Annotation() *Annotation       { return t.Annot }
func (t List) Annotation() *Annotation        { return t.Annot }
func (t Placeholder) Annotation() *Annotation { return t.Annot }

func (Leaf) isTerm()        {}
func (Int) isTerm()         {}
func (Real) isTerm()        {}
func (String) isTerm()      {}
func (Appl) isTerm()        {}
func (Tuple) isTerm()       {}
func (List) isTerm()        {}
func (Placeholder) isTerm() {}

// Arity returns the number of arguments of an application.
func (t Appl) Arity() int {
	return len(t.Args)
}

// Arity returns the number of elements of a tuple.
func (t Tuple) Arity() int {
	return len(t.Args)
}

// --- Constructors ----------------------------------------------------------

// L creates a leaf.
func L(label string) Leaf {
	return Leaf{Label: label}
}

// A creates an application with head label.
func A(label string, args ...Term) Appl {
	return App(L(label), args...)
}

// App creates an application with a given head leaf.
func App(head Leaf, args ...Term) Appl {
	return Appl{Head: head, Args: copyTerms(args)}
}

// T creates a tuple.
func T(args ...Term) Tuple {
	return Tuple{Args: copyTerms(args)}
}

// Lst creates a list.
func Lst(elts ...Term) List {
	return List{Elts: copyTerms(elts)}
}

// I creates an integer literal.
func I(n int64) Int {
	return Int{Value: n}
}

// R creates a real literal.
func R(x float64) Real {
	return Real{Value: x}
}

// S creates a string literal.
func S(s string) String {
	return String{Value: s}
}

// P creates a placeholder. It panics for an unknown placeholder kind.
func P(kind HoleKind, subpatterns ...Term) Placeholder {
	if _, ok := placeholderSets[kind]; !ok {
		panic(fmt.Sprintf("unknown placeholder kind <%s>", kind))
	}
	return Placeholder{Hole: kind, Subpatterns: copyTerms(subpatterns)}
}

// Literal wraps a Go value into a literal term. Supported are the Go integer
// types, float32/float64 and string. Any other type is a programmer error and
// Literal will panic, as it does for unsigned values beyond math.MaxInt64.
func Literal(v interface{}) Term {
	switch x := v.(type) {
	case int:
		return I(int64(x))
	case int8:
		return I(int64(x))
	case int16:
		return I(int64(x))
	case int32:
		return I(int64(x))
	case int64:
		return I(x)
	case uint8:
		return I(int64(x))
	case uint16:
		return I(int64(x))
	case uint32:
		return I(int64(x))
	case uint:
		return I(unsignedInt(uint64(x)))
	case uint64:
		return I(unsignedInt(x))
	case float32:
		return R(float64(x))
	case float64:
		return R(x)
	case string:
		return S(x)
	}
	tracer().Errorf("literal of unsupported type %T", v)
	panic(fmt.Sprintf("cannot create a literal term from %T", v))
}

func unsignedInt(x uint64) int64 {
	if x > math.MaxInt64 {
		tracer().Errorf("literal %d overflows int64", x)
		panic(fmt.Sprintf("cannot create a literal term from %d: overflows int64", x))
	}
	return int64(x)
}

// WithAnnotation returns a copy of t carrying annotation a.
func WithAnnotation(t Term, a *Annotation) Term {
	switch x := t.(type) {
	case Leaf:
		x.Annot = a
		return x
	case Int:
		x.Annot = a
		return x
	case Real:
		x.Annot = a
		return x
	case String:
		x.Annot = a
		return x
	case Appl:
		x.Annot = a
		return x
	case Tuple:
		x.Annot = a
		return x
	case List:
		x.Annot = a
		return x
	case Placeholder:
		x.Annot = a
		return x
	}
	panic(fmt.Sprintf("unknown term type %T", t))
}

// Children returns the sub-terms of a composite term: the arguments of an
// application or tuple, the elements of a list and the subpatterns of a
// placeholder. Heads and annotations are not children.
func Children(t Term) []Term {
	switch x := t.(type) {
	case Appl:
		return x.Args
	case Tuple:
		return x.Args
	case List:
		return x.Elts
	case Placeholder:
		return x.Subpatterns
	case Leaf, Int, Real, String:
		return nil
	}
	panic(fmt.Sprintf("unknown term type %T", t))
}

func copyTerms(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	c := make([]Term, len(terms))
	copy(c, terms)
	return c
}
