package psl

import (
	"fmt"
	"strings"
)

// Kind describes how a rule matches: as a literal suffix, as a wildcard
// covering any single label, or as an exception carved out of a wildcard.
type Kind uint8

const (
	KindNormal Kind = iota
	KindWildcard
	KindException
)

func (k Kind) String() string {
	switch k {
	case KindWildcard:
		return "wildcard"
	case KindException:
		return "exception"
	default:
		return "normal"
	}
}

// Source tells which part of the Public Suffix List a rule comes from.
type Source uint8

const (
	// SourceICANN marks rules from the ICANN-delegated section.
	SourceICANN Source = iota

	// SourcePrivate marks rules voluntarily submitted by domain operators.
	SourcePrivate
)

func (s Source) String() string {
	if s == SourcePrivate {
		return "private"
	}

	return "icann"
}

// Rule is one line of the Public Suffix List.
//
// Labels are stored in the written (left-to-right) order, lowercased,
// without the `!` or `*.` markers: those are captured by Kind.
type Rule struct {
	Labels []string
	Kind   Kind
	Source Source
}

// String renders the rule in list syntax, without the source section.
func (r *Rule) String() string {
	suffix := strings.Join(r.Labels, ".")

	switch r.Kind {
	case KindWildcard:
		return "*." + suffix
	case KindException:
		return "!" + suffix
	default:
		return suffix
	}
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
//
// It parses a single non-comment list line. Only the first
// whitespace-separated token counts. The Source is not part of the line
// and is left untouched.
func (r *Rule) UnmarshalText(data []byte) error {
	text := string(data)

	if fields := strings.Fields(text); len(fields) != 0 {
		text = fields[0]
	}

	rule := Rule{Kind: KindNormal, Source: r.Source}

	if strings.HasPrefix(text, "!") {
		rule.Kind = KindException
		text = text[1:]
	}

	if strings.HasPrefix(text, "*.") {
		if rule.Kind == KindException {
			return fmt.Errorf("wildcard inside exception rule %q", string(data))
		}

		rule.Kind = KindWildcard
		text = text[2:]
	}

	if len(text) == 0 {
		return fmt.Errorf("rule %q has no labels", string(data))
	}

	rule.Labels = strings.Split(strings.ToLower(text), ".")

	for _, label := range rule.Labels {
		if len(label) == 0 {
			return fmt.Errorf("empty label in rule %q", string(data))
		}
	}

	*r = rule

	return nil
}
