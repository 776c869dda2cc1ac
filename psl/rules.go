// Package psl parses the Public Suffix List rule format.
//
// The list is newline-delimited: `//` starts a comment, blank lines are
// skipped, and section marker comments partition the rules into the
// ICANN and private sections.
package psl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tldsplit/tldsplit/log"
	"github.com/tldsplit/tldsplit/psl/parsers"
)

const (
	icannSectionMarker   = "===BEGIN ICANN DOMAINS==="
	privateSectionMarker = "===BEGIN PRIVATE DOMAINS==="
)

// Rules returns a parser yielding one Rule per list line of `r`.
//
// Malformed lines surface as resumable errors: wrap with
// `parsers.AllowErrors` to skip them and keep going.
func Rules(r io.Reader) parsers.SeriesParser[*Rule] {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	return &ruleLines{scanner: scanner}
}

type ruleLines struct {
	scanner *bufio.Scanner
	lineNo  uint
	section Source // zero value: rules before any marker count as ICANN
}

func (l *ruleLines) Position() string {
	return fmt.Sprintf("line %d", l.lineNo)
}

func (l *ruleLines) Next(ctx context.Context) (*Rule, error) {
	for {
		l.lineNo++

		if err := ctx.Err(); err != nil {
			return nil, parsers.NewNonResumableError(err)
		}

		if !l.scanner.Scan() {
			break
		}

		text := strings.TrimSpace(l.scanner.Text())

		if len(text) == 0 {
			continue // empty line
		}

		if strings.HasPrefix(text, "//") {
			switch {
			case strings.Contains(text, icannSectionMarker):
				l.section = SourceICANN
			case strings.Contains(text, privateSectionMarker):
				l.section = SourcePrivate
			}

			continue // comment line
		}

		rule := &Rule{Source: l.section}
		if err := rule.UnmarshalText([]byte(text)); err != nil {
			return nil, err
		}

		return rule, nil
	}

	err := l.scanner.Err()
	if err != nil {
		// bufio.Scanner does not support continuing after an error
		return nil, parsers.NewNonResumableError(err)
	}

	return nil, parsers.NewNonResumableError(io.EOF)
}

// Parse reads all rules from `r`, skipping malformed lines with a warning.
func Parse(ctx context.Context, r io.Reader) ([]*Rule, error) {
	var rules []*Rule

	parser := parsers.AllowErrors(Rules(r), parsers.NoErrorLimit)
	parser.OnErr(func(err error) {
		log.PrefixedLog("psl").Warnf("ignoring malformed rule: %s", err)
	})

	// explicit instantiation: inference cannot see through the
	// FilteredSeriesParser interface
	err := parsers.ForEach[*Rule](ctx, parser, func(rule *Rule) error {
		rules = append(rules, rule)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rules, nil
}
