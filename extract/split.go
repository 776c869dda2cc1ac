package extract

import (
	"strings"

	"github.com/tldsplit/tldsplit/trie"
)

// Result is the final split of a hostname.
//
// Any part may be empty: a bare public suffix has no domain, a two-label
// registered domain has no subdomain, an unmatched hostname keeps its
// labels in Subdomain/Domain.
type Result struct {
	Subdomain string     `json:"subdomain"`
	Domain    string     `json:"domain"`
	Suffix    string     `json:"suffix"`
	Match     trie.Match `json:"match"`
}

// Hostname joins the non-empty parts back into the original hostname.
func (r Result) Hostname() string {
	parts := make([]string, 0, 3)

	for _, part := range []string{r.Subdomain, r.Domain, r.Suffix} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ".")
}

// RegisteredDomain returns the registrable name (domain + suffix), or
// the empty string if the hostname has no registrable part.
func (r Result) RegisteredDomain() string {
	if r.Domain == "" || r.Suffix == "" {
		return ""
	}

	return r.Domain + "." + r.Suffix
}

// Split combines the original (left-to-right) hostname labels with a
// suffix match into the final parts. Pure function, never fails.
func Split(labels []string, match trie.Match) Result {
	res := Result{Match: match}

	if len(labels) == 0 {
		return res
	}

	cut := len(labels) - match.Labels
	res.Suffix = strings.Join(labels[cut:], ".")

	if cut == 0 {
		// the hostname is exactly a public suffix
		return res
	}

	res.Domain = labels[cut-1]
	res.Subdomain = strings.Join(labels[:cut-1], ".")

	return res
}
