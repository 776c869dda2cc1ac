package trie

import "github.com/tldsplit/tldsplit/psl"

// Match is the longest suffix match found for a hostname.
type Match struct {
	// Labels is the number of hostname labels the suffix covers,
	// counted from the TLD end.
	Labels int

	// Source of the matching rule. Only meaningful if Listed is true.
	Source psl.Source

	// Wildcard is true if a wildcard rule produced the match.
	Wildcard bool

	// Exception is true if an exception rule shortened the match.
	Exception bool

	// Listed is false when no rule matched and only the implicit
	// "unlisted TLDs are their own suffix" rule applies.
	Listed bool
}

// Match walks the trie along `reversed` (hostname labels, TLD first) and
// returns the longest match.
//
// Private rules only become match candidates if includePrivate is set;
// they are still traversed structurally either way. An empty label list
// matches nothing.
func (t *SuffixTrie) Match(reversed []string, includePrivate bool) Match {
	var res Match

	if len(reversed) == 0 {
		return res
	}

	// implicit rule: an unlisted TLD is its own public suffix
	res.Labels = 1

	n := &t.root

	for depth, label := range reversed {
		literal := n.children[label]

		// candidates at this depth, in increasing precedence:
		// wildcard, exception override, literal rule
		switch {
		case isCandidate(literal, includePrivate) && literal.kind == psl.KindException:
			// the exception pops the suffix boundary back by one label
			res = Match{Labels: depth, Source: literal.source, Exception: true, Listed: true}

		case isCandidate(n.wildcard, includePrivate):
			res = Match{Labels: depth + 1, Source: n.wildcard.source, Wildcard: true, Listed: true}
		}

		if isCandidate(literal, includePrivate) && literal.kind == psl.KindNormal {
			res = Match{Labels: depth + 1, Source: literal.source, Listed: true}
		}

		switch {
		case literal != nil:
			n = literal
		case n.wildcard != nil:
			n = n.wildcard
		default:
			return res
		}
	}

	return res
}

func isCandidate(n *node, includePrivate bool) bool {
	return n != nil && n.terminal && (includePrivate || n.source == psl.SourceICANN)
}
