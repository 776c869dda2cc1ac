// Package api exposes extraction and list control over HTTP.
package api

const (
	// PathExtract answers extract queries: GET ?host=<hostname>
	PathExtract = "/api/extract"

	// PathListRefresh triggers a reload of the suffix list: POST
	PathListRefresh = "/api/lists/refresh"
)

// ExtractResult is the answer to an extract query.
type ExtractResult struct {
	// Hostname after normalization
	Hostname string `json:"hostname"`
	// Subdomain part, may be empty
	Subdomain string `json:"subdomain"`
	// Domain is the label left of the suffix, may be empty
	Domain string `json:"domain"`
	// Suffix is the matched public suffix, may be empty
	Suffix string `json:"suffix"`
	// RegisteredDomain is domain + suffix, may be empty
	RegisteredDomain string `json:"registeredDomain"`
	// Listed is true if a suffix rule matched (not just the implicit TLD rule)
	Listed bool `json:"listed"`
	// Source of the matched rule: "icann" or "private"
	Source string `json:"source,omitempty"`
	// Wildcard is true if a wildcard rule matched
	Wildcard bool `json:"wildcard"`
	// Exception is true if an exception rule applied
	Exception bool `json:"exception"`
}
