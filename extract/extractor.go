// Package extract turns hostnames into (subdomain, domain, suffix)
// triples using a compiled suffix trie.
package extract

import (
	"strings"
	"sync/atomic"

	"github.com/tldsplit/tldsplit/evt"
	"github.com/tldsplit/tldsplit/trie"
	"github.com/tldsplit/tldsplit/util"

	lru "github.com/hashicorp/golang-lru"
)

// Extractor answers extract queries against the currently published
// suffix trie.
//
// The trie is held behind an atomic pointer: Swap publishes a fully
// built replacement, so concurrent Extract calls never observe a
// partially built structure.
type Extractor struct {
	trie           atomic.Pointer[trie.SuffixTrie]
	includePrivate bool
	cache          *lru.Cache
}

type Option func(e *Extractor)

// WithPrivateSuffixes makes private-section rules eligible matches.
func WithPrivateSuffixes(include bool) Option {
	return func(e *Extractor) {
		e.includePrivate = include
	}
}

// WithCacheSize enables an LRU cache of extract results with the given
// number of entries. Zero disables caching.
func WithCacheSize(size int) Option {
	return func(e *Extractor) {
		if size > 0 {
			// error only on size <= 0
			e.cache, _ = lru.New(size)
		}
	}
}

// New creates an Extractor serving matches from `t`.
func New(t *trie.SuffixTrie, options ...Option) *Extractor {
	e := &Extractor{}
	e.trie.Store(t)

	for _, opt := range options {
		opt(e)
	}

	return e
}

// Swap publishes a new trie and drops all cached results.
func (e *Extractor) Swap(t *trie.SuffixTrie) {
	e.trie.Store(t)

	if e.cache != nil {
		e.cache.Purge()
	}
}

// RuleCount returns the number of rules in the published trie.
func (e *Extractor) RuleCount() int {
	return e.trie.Load().Size()
}

// Extract normalizes a raw URL or hostname and splits it.
//
// IP literals are reported as a bare Domain with an empty suffix.
func (e *Extractor) Extract(raw string) Result {
	host := util.Normalize(raw)
	if host == "" {
		return Result{}
	}

	if util.IsIP(host) {
		return Result{Domain: host}
	}

	if e.cache != nil {
		if cached, found := e.cache.Get(host); found {
			evt.Bus().Publish(evt.ExtractResultCacheHit, host)

			return cached.(Result)
		}

		evt.Bus().Publish(evt.ExtractResultCacheMiss, host)
	}

	res := e.ExtractLabels(strings.Split(host, "."))

	if e.cache != nil {
		e.cache.Add(host, res)
	}

	return res
}

// ExtractLabels splits pre-normalized hostname labels (left-to-right
// order). An empty label list yields the zero Result.
func (e *Extractor) ExtractLabels(labels []string) Result {
	match := e.trie.Load().Match(util.Reversed(labels), e.includePrivate)

	return Split(labels, match)
}
