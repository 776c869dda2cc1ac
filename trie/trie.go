// Package trie compiles Public Suffix List rules into a reversed-label
// trie and answers longest-match suffix queries against it.
package trie

import (
	"fmt"

	"github.com/tldsplit/tldsplit/psl"
)

// SuffixTrie stores suffix rules keyed by their labels in reversed
// (TLD-first) order.
//
// It is built once and never mutated afterwards, so it can be shared
// read-only between any number of goroutines.
type SuffixTrie struct {
	root node
	size int
}

// A node is one label position in reversed-label space.
//
// The wildcard child lives in its own field so a literal label named
// "*" can never collide with it.
type node struct {
	children map[string]*node
	wildcard *node

	terminal bool
	kind     psl.Kind
	source   psl.Source
}

func (n *node) child(label string) *node {
	if n.children == nil {
		n.children = make(map[string]*node, 1)
	}

	child, ok := n.children[label]
	if !ok {
		child = &node{}
		n.children[label] = child
	}

	return child
}

// DuplicateRuleError is returned by Build when two rules disagree on the
// kind at the same trie position. It indicates a corrupt rule source.
type DuplicateRuleError struct {
	Rule     *psl.Rule
	Existing psl.Kind
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("conflicting rule '%s': position already terminates a %s rule", e.Rule, e.Existing)
}

// Build compiles an ordered rule set into a SuffixTrie.
//
// Rules identical in labels and kind are a no-op: the first occurrence
// wins, including its source tag. Rules identical in labels but
// disagreeing in kind abort with a DuplicateRuleError.
func Build(rules []*psl.Rule) (*SuffixTrie, error) {
	t := &SuffixTrie{}

	for _, rule := range rules {
		if err := t.insert(rule); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *SuffixTrie) insert(rule *psl.Rule) error {
	n := &t.root

	// walk TLD-first
	for i := len(rule.Labels) - 1; i >= 0; i-- {
		n = n.child(rule.Labels[i])
	}

	if rule.Kind == psl.KindWildcard {
		if n.wildcard == nil {
			n.wildcard = &node{}
		}

		n = n.wildcard
	}

	if n.terminal {
		if n.kind != rule.Kind {
			return &DuplicateRuleError{Rule: rule, Existing: n.kind}
		}

		return nil
	}

	n.terminal = true
	n.kind = rule.Kind
	n.source = rule.Source
	t.size++

	return nil
}

// Size returns the number of distinct rules in the trie.
func (t *SuffixTrie) Size() int {
	return t.size
}

// IsEmpty reports whether the trie contains no rules.
func (t *SuffixTrie) IsEmpty() bool {
	return t.size == 0
}
