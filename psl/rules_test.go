package psl

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const listSnippet = `
// This Source Code Form is subject to the terms of the Mozilla Public License.

// ===BEGIN ICANN DOMAINS===

com
uk
co.uk
*.ck
!www.ck

// ===END ICANN DOMAINS===
// ===BEGIN PRIVATE DOMAINS===

github.io

// ===END PRIVATE DOMAINS===
`

var _ = Describe("Rules parsing", func() {
	var (
		rules []*Rule
		err   error
	)

	Describe("Parse", func() {
		When("a full list snippet is parsed", func() {
			BeforeEach(func() {
				rules, err = Parse(context.Background(), strings.NewReader(listSnippet))
				Expect(err).Should(Succeed())
			})

			It("should skip comments and blank lines", func() {
				Expect(rules).Should(HaveLen(6))
			})

			It("should keep list order", func() {
				Expect(rules[0].String()).Should(Equal("com"))
				Expect(rules[3].String()).Should(Equal("*.ck"))
				Expect(rules[4].String()).Should(Equal("!www.ck"))
			})

			It("should tag rules before the private marker as ICANN", func() {
				for _, rule := range rules[:5] {
					Expect(rule.Source).Should(Equal(SourceICANN))
				}
			})

			It("should tag rules after the private marker as private", func() {
				Expect(rules[5].String()).Should(Equal("github.io"))
				Expect(rules[5].Source).Should(Equal(SourcePrivate))
			})
		})

		When("the list contains malformed lines", func() {
			BeforeEach(func() {
				rules, err = Parse(context.Background(), strings.NewReader("com\nbad..rule\nnet\n"))
			})

			It("should skip them and continue", func() {
				Expect(err).Should(Succeed())
				Expect(rules).Should(HaveLen(2))
				Expect(rules[0].String()).Should(Equal("com"))
				Expect(rules[1].String()).Should(Equal("net"))
			})
		})

		When("the context is cancelled", func() {
			It("should abort", func() {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				_, err = Parse(ctx, strings.NewReader(listSnippet))
				Expect(err).ShouldNot(Succeed())
			})
		})

		When("the input is empty", func() {
			It("should return no rules", func() {
				rules, err = Parse(context.Background(), strings.NewReader(""))
				Expect(err).Should(Succeed())
				Expect(rules).Should(BeEmpty())
			})
		})
	})

	Describe("Rules parser position", func() {
		It("should report the line number", func() {
			parser := Rules(strings.NewReader("com\nnet\n"))

			_, err = parser.Next(context.Background())
			Expect(err).Should(Succeed())
			Expect(parser.Position()).Should(Equal("line 1"))
		})
	})
})
