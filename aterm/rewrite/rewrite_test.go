package rewrite

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/strat/aterm"
	"github.com/npillmayer/strat/aterm/match"
)

func mustRule(t *testing.T, label string, left, right aterm.Term) *Rule {
	t.Helper()
	r, err := NewRule(label, left, right)
	if err != nil {
		t.Fatalf("cannot create rule %s: %v", label, err)
	}
	return r
}

func TestRuleNonLinear(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	both := mustRule(t, "both", aterm.A("f", aterm.L("x"), aterm.L("x")), aterm.I(1))
	if r := both.Rewrite(aterm.A("f", aterm.I(1), aterm.I(2))); r.OK() {
		t.Errorf("expected f(1, 2) to be rejected, got %s", r)
	}
	r := both.Rewrite(aterm.A("f", aterm.I(3), aterm.I(3)))
	if !r.OK() || !aterm.Equal(r.Term(), aterm.I(1)) {
		t.Errorf("expected f(3, 3) to rewrite to 1, got %s", r)
	}
}

func TestRuleSwap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	swap := mustRule(t, "swap", aterm.A("Pair", aterm.L("a"), aterm.L("b")), aterm.A("Pair", aterm.L("b"), aterm.L("a")))
	r := swap.Rewrite(aterm.A("Pair", aterm.I(1), aterm.A("g", aterm.S("x"))))
	expected := aterm.A("Pair", aterm.A("g", aterm.S("x")), aterm.I(1))
	if !r.OK() || !aterm.Equal(r.Term(), expected) {
		t.Errorf("expected %s, got %s", expected, r)
	}
	if swap.Rewrite(aterm.A("Pair", aterm.I(1))).OK() {
		t.Errorf("expected arity mismatch to fail")
	}
}

func TestRuleAsPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	// flip: @F(x, y) -> F(y, x)
	flip := mustRule(t, "flip",
		aterm.A("@F", aterm.L("x"), aterm.L("y")),
		aterm.A("F", aterm.L("y"), aterm.L("x")))
	r := flip.Rewrite(aterm.A("Sub", aterm.I(1), aterm.I(2)))
	expected := aterm.A("Sub", aterm.I(2), aterm.I(1))
	if !r.OK() || !aterm.Equal(r.Term(), expected) {
		t.Errorf("expected %s, got %s", expected, r)
	}
}

func TestRuleNullaryAsPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	// wrap: g(@F()) -> k(F, F())
	wrap := mustRule(t, "wrap",
		aterm.A("g", aterm.A("@F")),
		aterm.A("k", aterm.L("F"), aterm.A("F")))
	r := wrap.Rewrite(aterm.A("g", aterm.A("h", aterm.I(2))))
	expected := aterm.A("k", aterm.A("h", aterm.I(2)), aterm.A("h", aterm.I(2)))
	if !r.OK() || !aterm.Equal(r.Term(), expected) {
		t.Errorf("expected %s, got %s", expected, r)
	}
	// F is bound to a whole application and cannot head a new one
	for _, right := range []aterm.Term{
		aterm.A("F", aterm.I(1)),
		aterm.A("k", aterm.A("@F", aterm.I(1))),
	} {
		_, err := NewRule("r", aterm.A("g", aterm.A("@F")), right)
		var cerr *ConstructionError
		if !errors.As(err, &cerr) || !errors.Is(err, match.ErrHead) {
			t.Errorf("%s: expected head error, got %v", right, err)
			continue
		}
		if cerr.Name != "F" {
			t.Errorf("expected error for variable F, got %v", cerr)
		}
	}
}

func TestRuleConstructionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	_, err := NewRule("bad", aterm.A("f", aterm.L("x")), aterm.A("g", aterm.L("y")))
	var cerr *ConstructionError
	if !errors.As(err, &cerr) || !errors.Is(err, ErrUnbound) {
		t.Fatalf("expected unbound variable error, got %v", err)
	}
	if cerr.Label != "bad" || cerr.Name != "y" {
		t.Errorf("expected error for variable y of bad, got %v", cerr)
	}
	_, err = NewRule("ph", aterm.A("f", aterm.P(aterm.AnyInt)), aterm.I(1))
	if !errors.Is(err, ErrPlaceholder) {
		t.Errorf("expected placeholder error, got %v", err)
	}
}

func TestRuleBlockOrderedAlternation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	foo := NewRuleBlock("foo",
		mustRule(t, "foo", aterm.A("A"), aterm.A("B")),
		mustRule(t, "foo", aterm.A("B"), aterm.A("C")))
	r := foo.Rewrite(aterm.A("A"))
	if !r.OK() || !aterm.Equal(r.Term(), aterm.A("B")) {
		t.Errorf("expected B(), got %s", r)
	}
	if foo.Rewrite(aterm.A("C")).OK() {
		t.Errorf("expected C() not to rewrite")
	}
	ext := foo.Extend(mustRule(t, "foo", aterm.A("C"), aterm.A("D")))
	if ext.Len() != 3 || foo.Len() != 2 {
		t.Errorf("expected Extend to leave the original block unchanged")
	}
}

func TestChoiceFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	term := aterm.A("f", aterm.I(1))
	if r := Choice(Fail(), Id()).Rewrite(term); !r.OK() || !aterm.Equal(r.Term(), term) {
		t.Errorf("Choice(Fail, Id) should be identity, got %s", r)
	}
	called := false
	spy := RewriterFunc(func(t aterm.Term) Result {
		called = true
		return Success(t)
	})
	if r := Choice(Id(), spy).Rewrite(term); !r.OK() || !aterm.Equal(r.Term(), term) {
		t.Errorf("Choice(Id, _) should be identity, got %s", r)
	}
	if called {
		t.Errorf("second branch of Choice must not be invoked if the first succeeds")
	}
	if Seq(Fail(), spy).Rewrite(term).OK() || called {
		t.Errorf("Seq must short-circuit on failure")
	}
}

func TestTryNeverFails(t *testing.T) {
	for _, term := range []aterm.Term{aterm.I(1), aterm.L("x"), aterm.A("f"), aterm.Lst()} {
		if r := Try(Fail()).Rewrite(term); !r.OK() || !aterm.Equal(r.Term(), term) {
			t.Errorf("Try(Fail) should return %s, got %s", term, r)
		}
	}
}

func TestRepeat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	dec := NewRuleBlock("dec",
		mustRule(t, "dec", aterm.I(3), aterm.I(2)),
		mustRule(t, "dec", aterm.I(2), aterm.I(1)))
	r := Repeat(dec).Rewrite(aterm.I(3))
	if !r.OK() || !aterm.Equal(r.Term(), aterm.I(1)) {
		t.Errorf("expected 1, got %s", r)
	}
	r = Repeat(dec).Rewrite(aterm.I(7))
	if !r.OK() || !aterm.Equal(r.Term(), aterm.I(7)) {
		t.Errorf("expected Repeat to leave 7 unchanged, got %s", r)
	}
}

func TestGuarded(t *testing.T) {
	ab := NewRuleBlock("ab", mustRule(t, "ab", aterm.A("A"), aterm.A("B")))
	bc := NewRuleBlock("bc", mustRule(t, "bc", aterm.A("B"), aterm.A("C")))
	toX := NewRuleBlock("x", mustRule(t, "x", aterm.L("t"), aterm.A("X")))
	s := Guarded(ab, bc, toX)
	if r := s.Rewrite(aterm.A("A")); !r.OK() || !aterm.Equal(r.Term(), aterm.A("C")) {
		t.Errorf("expected C(), got %s", r)
	}
	if r := s.Rewrite(aterm.A("Z")); !r.OK() || !aterm.Equal(r.Term(), aterm.A("X")) {
		t.Errorf("expected X(), got %s", r)
	}
	if Guarded(ab, Fail(), toX).Rewrite(aterm.A("A")).OK() {
		t.Errorf("failure of the then-branch must not fall back to the else-branch")
	}
}

func TestAllSome(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	inc := NewRuleBlock("inc", mustRule(t, "inc", aterm.I(1), aterm.I(2)))
	term := aterm.A("f", aterm.I(1), aterm.I(1))
	if r := All(inc).Rewrite(term); !r.OK() || !aterm.Equal(r.Term(), aterm.A("f", aterm.I(2), aterm.I(2))) {
		t.Errorf("expected f(2, 2), got %s", r)
	}
	mixed := aterm.A("f", aterm.I(1), aterm.I(5))
	if All(inc).Rewrite(mixed).OK() {
		t.Errorf("All must fail if any child fails")
	}
	if r := Some(inc).Rewrite(mixed); !r.OK() || !aterm.Equal(r.Term(), aterm.A("f", aterm.I(2), aterm.I(5))) {
		t.Errorf("expected f(2, 5), got %s", r)
	}
	if r := All(inc).Rewrite(aterm.I(7)); !r.OK() {
		t.Errorf("All must be identity on atoms")
	}
	if Some(inc).Rewrite(aterm.I(7)).OK() {
		t.Errorf("Some must fail on atoms")
	}
	tuple := aterm.T(aterm.I(1), aterm.Lst(aterm.I(1)))
	r := All(Try(inc)).Rewrite(tuple)
	if !r.OK() || !aterm.Equal(r.Term(), aterm.T(aterm.I(2), aterm.Lst(aterm.I(1)))) {
		t.Errorf("expected (2, [1]), got %s", r)
	}
	r = Topdown(Try(inc)).Rewrite(tuple)
	if !r.OK() || !aterm.Equal(r.Term(), aterm.T(aterm.I(2), aterm.Lst(aterm.I(2)))) {
		t.Errorf("expected traversal into lists, got %s", r)
	}
}

func TestInnermost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	s := NewRuleBlock("s",
		mustRule(t, "s", aterm.A("Succ", aterm.A("Succ", aterm.I(0))), aterm.A("Succ", aterm.I(1))),
		mustRule(t, "s", aterm.A("Succ", aterm.I(1)), aterm.I(2)))
	r := Innermost(s).Rewrite(aterm.A("Succ", aterm.A("Succ", aterm.I(0))))
	if !r.OK() || !aterm.Equal(r.Term(), aterm.I(2)) {
		t.Errorf("expected 2, got %s", r)
	}
}

func TestBottomupOrder(t *testing.T) {
	var visited []string
	spy := RewriterFunc(func(t aterm.Term) Result {
		visited = append(visited, t.String())
		return Success(t)
	})
	Bottomup(spy).Rewrite(aterm.A("f", aterm.L("a"), aterm.L("b")))
	expected := []string{"a", "b", "f(a, b)"}
	if len(visited) != 3 {
		t.Fatalf("expected %v, got %v", expected, visited)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, visited)
		}
	}
}

func TestTopdownOrder(t *testing.T) {
	var visited []string
	spy := RewriterFunc(func(t aterm.Term) Result {
		visited = append(visited, t.String())
		return Success(t)
	})
	Topdown(spy).Rewrite(aterm.A("f", aterm.A("g", aterm.L("a")), aterm.L("b")))
	expected := []string{"f(g(a), b)", "g(a)", "a", "b"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, visited)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, visited)
		}
	}
}

func TestTopdownFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.rewrite")
	defer teardown()
	//
	if Topdown(Fail()).Rewrite(aterm.A("f", aterm.I(1))).OK() {
		t.Errorf("expected Topdown(Fail) to fail")
	}
	// fails at the root
	visited := 0
	onlyInts := RewriterFunc(func(t aterm.Term) Result {
		visited++
		if t.Kind() == aterm.IntKind {
			return Success(t)
		}
		return Failure()
	})
	if Topdown(onlyInts).Rewrite(aterm.A("f", aterm.I(1))).OK() {
		t.Errorf("expected Topdown to fail if s fails at the root")
	}
	if visited != 1 {
		t.Errorf("expected Topdown not to descend after a failure at the root, visited %d", visited)
	}
	// fails below the root
	onlyAppls := RewriterFunc(func(t aterm.Term) Result {
		if t.Kind() == aterm.ApplKind {
			return Success(t)
		}
		return Failure()
	})
	if Topdown(onlyAppls).Rewrite(aterm.A("f", aterm.A("g"), aterm.I(1))).OK() {
		t.Errorf("expected Topdown to fail if s fails for a child")
	}
	if !Topdown(onlyAppls).Rewrite(aterm.A("f", aterm.A("g"))).OK() {
		t.Errorf("expected Topdown to succeed if s succeeds everywhere")
	}
}

func TestStrategyString(t *testing.T) {
	foo := NewRuleBlock("foo")
	bar := NewFwd("bar")
	s := Try(Seq(foo, bar))
	if nameOf(s) != "Try(Seq(foo, bar))" {
		t.Errorf("unexpected rendering %q", nameOf(s))
	}
	if nameOf(SeqL(foo, foo, bar)) != "Seq(foo, Seq(foo, bar))" {
		t.Errorf("unexpected rendering of SeqL")
	}
}

func TestFwd(t *testing.T) {
	f := NewFwd("x")
	if f.Defined() {
		t.Errorf("new Fwd must not be defined")
	}
	if err := f.Define(Id()); err != nil {
		t.Fatal(err)
	}
	if err := f.Define(Id()); !errors.Is(err, ErrRedefined) {
		t.Errorf("expected second definition to fail, got %v", err)
	}
	if r := f.Rewrite(aterm.I(1)); !r.OK() {
		t.Errorf("expected Fwd to delegate")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected undefined Fwd to panic")
		}
	}()
	NewFwd("y").Rewrite(aterm.I(1))
}
