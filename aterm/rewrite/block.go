package rewrite

import (
	"github.com/npillmayer/strat/aterm"
)

// RuleBlock is an ordered group of rules sharing a label. It rewrites with
// the first rule which succeeds and fails if every rule fails.
type RuleBlock struct {
	Label string
	rules []*Rule
}

// NewRuleBlock creates a rule block. The order of rules is significant.
func NewRuleBlock(label string, rules ...*Rule) *RuleBlock {
	return &RuleBlock{Label: label, rules: append([]*Rule(nil), rules...)}
}

// Extend returns a new block with additional rules appended. The receiver
// is left unchanged.
func (b *RuleBlock) Extend(rules ...*Rule) *RuleBlock {
	ext := make([]*Rule, 0, len(b.rules)+len(rules))
	ext = append(ext, b.rules...)
	ext = append(ext, rules...)
	return &RuleBlock{Label: b.Label, rules: ext}
}

// Rules returns the rules of the block in order.
func (b *RuleBlock) Rules() []*Rule {
	return append([]*Rule(nil), b.rules...)
}

// Len returns the number of rules in the block.
func (b *RuleBlock) Len() int {
	return len(b.rules)
}

// Rewrite tries every rule in order. Only the first successful rule
// is applied; its result is not rewritten any further.
func (b *RuleBlock) Rewrite(t aterm.Term) Result {
	for _, r := range b.rules {
		if res := r.Rewrite(t); res.OK() {
			return res
		}
	}
	return Failure()
}

func (b *RuleBlock) String() string {
	return b.Label
}
