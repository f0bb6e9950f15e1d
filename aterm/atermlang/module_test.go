package atermlang

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/strat/aterm"
	"github.com/npillmayer/strat/aterm/match"
	"github.com/npillmayer/strat/aterm/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTerm(t *testing.T, s string) aterm.Term {
	t.Helper()
	term, err := ParseTerm(s)
	require.NoError(t, err)
	return term
}

func rewriteWith(t *testing.T, env *rewrite.Env, label, subject string) rewrite.Result {
	t.Helper()
	r, ok := env.Lookup(label)
	require.True(t, ok, "label %s not defined", label)
	return r.Rewrite(mustTerm(t, subject))
}

func TestModuleSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.lang")
	defer teardown()
	//
	env, err := Module(`
foo : A() -> B()
foo : B() -> C()

bar = foo ; foo
`, nil)
	require.NoError(t, err)
	r := rewriteWith(t, env, "foo", "A()")
	require.True(t, r.OK())
	assert.Equal(t, "B()", r.Term().String()) // first rule only
	r = rewriteWith(t, env, "foo", "B()")
	assert.Equal(t, "C()", r.Term().String())
	r = rewriteWith(t, env, "bar", "A()")
	assert.Equal(t, "C()", r.Term().String())
	assert.False(t, rewriteWith(t, env, "bar", "B()").OK())
}

func TestModuleNonLinear(t *testing.T) {
	env, err := Module(`
both : f(x,x) -> 1
both : f(x,y) -> 0
`, nil)
	require.NoError(t, err)
	assert.Equal(t, "0", rewriteWith(t, env, "both", "f(1,2)").Term().String())
	assert.Equal(t, "1", rewriteWith(t, env, "both", "f(3,3)").Term().String())
	assert.Equal(t, "1", rewriteWith(t, env, "both", "f(g(a),g(a))").Term().String())
}

func TestModulePatterns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.lang")
	defer teardown()
	//
	env, err := Module(`
EvalIf : If(False(), e1, e2) -> e2
EvalIf : If(True(), e1, e2) -> e1
PropIf : If(B, @F(X), @F(Y)) -> F(If(B, X, Y))

eval = innermost(EvalIf <+ PropIf)
`, nil)
	require.NoError(t, err)
	r := rewriteWith(t, env, "PropIf", "If(c, Neg(a), Neg(b))")
	require.True(t, r.OK())
	assert.Equal(t, "Neg(If(c, a, b))", r.Term().String())
	assert.False(t, rewriteWith(t, env, "PropIf", "If(c, Neg(a), Pos(b))").OK(), "heads must agree")
	r = rewriteWith(t, env, "eval", "Add(If(True(), Neg(x), Neg(y)), If(z, Neg(1), Neg(2)))")
	require.True(t, r.OK())
	assert.Equal(t, "Add(Neg(x), Neg(If(z, 1, 2)))", r.Term().String())
}

func TestModuleInnermost(t *testing.T) {
	env, err := Module(`
s : Succ(Succ(0)) -> Succ(1)
s : Succ(1) -> 2
norm = innermost(s)
`, nil)
	require.NoError(t, err)
	r := rewriteWith(t, env, "norm", "Succ(Succ(0))")
	require.True(t, r.OK())
	assert.Equal(t, "2", r.Term().String())
}

func TestModuleRecursiveStrategy(t *testing.T) {
	env, err := Module(`
dec : S(n) -> n
down = try(dec ; down)
`, nil)
	require.NoError(t, err)
	r := rewriteWith(t, env, "down", "S(S(S(Z())))")
	require.True(t, r.OK())
	assert.Equal(t, "Z()", r.Term().String())
}

func TestModuleExtends(t *testing.T) {
	prior, err := Module("foo : A() -> B()", nil)
	require.NoError(t, err)
	env, err := Module(`
foo : B() -> C()
twice = foo ; foo
`, prior)
	require.NoError(t, err)
	assert.Equal(t, "C()", rewriteWith(t, env, "twice", "A()").Term().String())
	assert.False(t, rewriteWith(t, prior, "foo", "B()").OK())
	assert.Equal(t, []string{"foo", "twice"}, env.Labels())
}

func TestModuleErrors(t *testing.T) {
	cases := []struct {
		src    string
		reason error
	}{
		{"r : f(x) -> g(y)", rewrite.ErrUnbound},
		{"r : f(<int>) -> g()", rewrite.ErrPlaceholder},
		{"s = nothing", rewrite.ErrUndeclared},
		{"s = id\ns = fail", rewrite.ErrRedefined},
		{"s = try(a, b)", rewrite.ErrCombinator},
		{"r : g(@F()) -> F(1)", match.ErrHead},
	}
	for _, c := range cases {
		env, err := Module(c.src, nil)
		assert.Nil(t, env)
		assert.True(t, errors.Is(err, c.reason), "%q: expected %v, got %v", c.src, c.reason, err)
	}
}

func TestMatchRoundTripParsed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "strat.lang")
	defer teardown()
	//
	cases := []struct{ pattern, subject string }{
		{"f(<int>, <real>)", "f(3, 2.5)"},
		{"f(1, <appl(x, <term>)>)", "f(1, g(x, 3))"},
		{"<appl(<term>, (<str>, <list>))>", `h(k, ("s", [1, 2]))`},
		{"f(x, g(x, y))", "f(x, g(x, y))"},
	}
	for _, c := range cases {
		p, err := ParsePattern(c.pattern)
		require.NoError(t, err)
		s := mustTerm(t, c.subject)
		ok, caps := match.Terms(p, s)
		require.True(t, ok, "%s should match %s", c.pattern, c.subject)
		built, err := match.Build(p, match.NewValueStack(caps...))
		require.NoError(t, err)
		assert.True(t, aterm.Equal(s, built), "expected %s, built %s", s, built)
	}
	_, caps := match.Terms(mustTerm(t, "f(<int>, <real>)"), mustTerm(t, "f(3, 2.5)"))
	assert.Equal(t, "3", caps[0].String())
	assert.Equal(t, "2.5", caps[1].String())
}
