package aterm

import (
	"math"
	"strconv"
	"strings"
)

// String() renders terms in the concrete syntax of package atermlang, so
// that printed terms may be parsed back in.

func (t Leaf) String() string {
	return t.Label + annotationString(t.Annot)
}

func (t Int) String() string {
	return strconv.FormatInt(t.Value, 10) + annotationString(t.Annot)
}

func (t Real) String() string {
	return formatReal(t.Value) + annotationString(t.Annot)
}

func (t String) String() string {
	return strconv.Quote(t.Value) + annotationString(t.Annot)
}

func (t Appl) String() string {
	return t.Head.Label + "(" + joinTerms(t.Args) + ")" + annotationString(t.Annot)
}

func (t Tuple) String() string {
	return "(" + joinTerms(t.Args) + ")" + annotationString(t.Annot)
}

func (t List) String() string {
	return "[" + joinTerms(t.Elts) + "]" + annotationString(t.Annot)
}

func (t Placeholder) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(string(t.Hole))
	if len(t.Subpatterns) > 0 {
		b.WriteByte('(')
		b.WriteString(joinTerms(t.Subpatterns))
		b.WriteByte(')')
	}
	b.WriteByte('>')
	return b.String() + annotationString(t.Annot)
}

func (a *Annotation) String() string {
	return annotationString(a)
}

func annotationString(a *Annotation) string {
	if a.IsEmpty() {
		return ""
	}
	var b strings.Builder
	b.WriteByte('{')
	if a.Type != "" {
		b.WriteString(a.Type)
		b.WriteByte(':')
		if len(a.Terms) > 0 {
			b.WriteByte(' ')
		}
	}
	b.WriteString(joinTerms(a.Terms))
	b.WriteByte('}')
	return b.String()
}

func joinTerms(terms []Term) string {
	s := make([]string, len(terms))
	for i, t := range terms {
		s[i] = t.String()
	}
	return strings.Join(s, ", ")
}

// formatReal always produces a decimal point, keeping reals distinguishable
// from integers in the concrete syntax.
func formatReal(x float64) string {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
