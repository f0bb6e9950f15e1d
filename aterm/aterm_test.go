package aterm

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEqualByValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.aterm")
	defer teardown()
	//
	a := A("f", I(1), L("x"), T(S("s"), R(2.5)))
	b := A("f", I(1), L("x"), T(S("s"), R(2.5)))
	if !Equal(a, b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	if Equal(a, A("f", I(1), L("x"))) {
		t.Errorf("applications of different arity must not be equal")
	}
	if Equal(I(3), R(3.0)) {
		t.Errorf("literals of different kind must not be equal")
	}
	if Equal(A("f"), T()) {
		t.Errorf("application must not equal tuple")
	}
}

func TestEqualAnnotations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.aterm")
	defer teardown()
	//
	x := L("x")
	xa := WithAnnotation(x, Annotate("", L("foo")))
	if Equal(x, xa) {
		t.Errorf("leaves with different annotations must not be equal")
	}
	if !Equal(x, WithAnnotation(x, &Annotation{})) {
		t.Errorf("empty annotation should equal missing annotation")
	}
	if !Equal(xa, WithAnnotation(L("x"), Annotate("", L("foo")))) {
		t.Errorf("equal annotations should compare equal")
	}
}

func TestConstructorsCopyArgs(t *testing.T) {
	args := []Term{I(1), I(2)}
	a := A("f", args...)
	args[0] = I(99)
	if !Equal(a.Args[0], I(1)) {
		t.Errorf("constructor must not alias its argument slice")
	}
}

func TestLiteral(t *testing.T) {
	if !Equal(Literal(7), I(7)) {
		t.Errorf("expected Literal(7) to be an Int")
	}
	if !Equal(Literal(0.5), R(0.5)) {
		t.Errorf("expected Literal(0.5) to be a Real")
	}
	if !Equal(Literal("a"), S("a")) {
		t.Errorf("expected Literal(\"a\") to be a String")
	}
	if !Equal(Literal(uint(9)), I(9)) || !Equal(Literal(uint64(math.MaxInt64)), I(math.MaxInt64)) {
		t.Errorf("expected unsigned literals to be Ints")
	}
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected Literal to panic for uint64 overflow")
			}
		}()
		Literal(uint64(math.MaxUint64))
	}()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Literal to panic for unsupported type")
		}
	}()
	Literal(struct{}{})
}

func TestPlaceholderSets(t *testing.T) {
	cases := []struct {
		hole HoleKind
		kind Kind
		ok   bool
	}{
		{AnyAppl, ApplKind, true},
		{AnyAppl, LeafKind, false},
		{AnyInt, IntKind, true},
		{AnyInt, RealKind, false},
		{AnyTerm, LeafKind, true},
		{AnyTerm, StringKind, true},
		{AnyTerm, TupleKind, false},
		{AnyTerm, ListKind, false},
		{AnyList, ListKind, true},
		{AnyPlaceholder, PlaceholderKind, true},
		{AnyStr, StringKind, true},
	}
	for _, c := range cases {
		if c.hole.Accepts(c.kind) != c.ok {
			t.Errorf("<%s> accepting %s: expected %v", c.hole, c.kind, c.ok)
		}
	}
	if _, ok := HoleKindFrom("int"); !ok {
		t.Errorf("expected 'int' to be a placeholder kind")
	}
	if _, ok := HoleKindFrom("float"); ok {
		t.Errorf("did not expect 'float' to be a placeholder kind")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		term Term
		out  string
	}{
		{L("f"), "f"},
		{A("f"), "f()"},
		{A("f", L("x"), A("g", I(1), R(2))), "f(x, g(1, 2.0))"},
		{T(L("x"), L("y")), "(x, y)"},
		{Lst(I(1), I(2), R(3.14)), "[1, 2, 3.14]"},
		{S("a\"b"), `"a\"b"`},
		{P(AnyInt), "<int>"},
		{P(AnyAppl, L("x"), P(AnyTerm)), "<appl(x, <term>)>"},
		{WithAnnotation(A("f", L("x")), Annotate("", L("abc"), L("foo"))), "f(x){abc, foo}"},
		{WithAnnotation(I(2), Annotate("dshape", S("int"))), `2{dshape: "int"}`},
		{WithAnnotation(L("t"), Annotate("ty")), "t{ty:}"},
	}
	for _, c := range cases {
		if s := c.term.String(); s != c.out {
			t.Errorf("expected %q, got %q", c.out, s)
		}
	}
}

func TestPreorder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.aterm")
	defer teardown()
	//
	term := A("f", L("x"), A("g", I(1), T(L("y"))), Lst(S("s")))
	var labels []string
	for node, seq := Preorder(term).First(); !seq.Done(); node = seq.Next() {
		labels = append(labels, node.Term.Kind().String())
	}
	expected := []string{"Appl", "Leaf", "Appl", "Int", "Tuple", "Leaf", "List", "String"}
	if len(labels) != len(expected) {
		t.Fatalf("expected %d nodes, got %d: %v", len(expected), len(labels), labels)
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("node #%d: expected %s, got %s", i, expected[i], labels[i])
		}
	}
	if Size(term) != 8 {
		t.Errorf("expected size 8, got %d", Size(term))
	}
	if Depth(term) != 3 {
		t.Errorf("expected depth 3, got %d", Depth(term))
	}
	leaves := Preorder(term).Nodes(OfKind(LeafKind))
	if len(leaves) != 2 || leaves[1].Term.(Leaf).Label != "y" || leaves[1].Depth != 3 {
		t.Errorf("unexpected leaf nodes %v", leaves)
	}
}

func TestPreorderBreak(t *testing.T) {
	seq := Preorder(A("f", I(1), I(2)))
	node, s := seq.First()
	if node.Term.Kind() != ApplKind {
		t.Errorf("expected root first")
	}
	s.Break()
	if !s.Done() {
		t.Errorf("expected sequence to be done after Break")
	}
	if Size(nil) != 0 {
		t.Errorf("expected empty walk for nil term")
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.aterm")
	defer teardown()
	//
	a := A("f", I(1), L("x"))
	b := A("f", I(1), L("x"))
	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("equal terms should have equal fingerprints")
	}
	distinct := []Term{
		A("f", I(1), L("x")),
		A("f", R(1), L("x")),
		A("f", S("1"), L("x")),
		A("g", I(1), L("x")),
		T(I(1), L("x")),
		Lst(I(1), L("x")),
		L("x"),
		S("x"),
	}
	seen := map[string]int{}
	for i, term := range distinct {
		fp := Fingerprint(term)
		if j, ok := seen[fp]; ok {
			t.Errorf("fingerprint collision between %s and %s", distinct[j], term)
		}
		seen[fp] = i
	}
}
