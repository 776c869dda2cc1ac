package util

import (
	"net"
	"strings"

	"github.com/miekg/dns"
)

// Normalize reduces a raw input (URL or bare hostname) to a lowercase
// hostname: scheme, userinfo, path, query, port and the trailing dot are
// stripped. No IDN decoding takes place; internationalized labels are
// expected pre-encoded.
func Normalize(raw string) string {
	host := strings.ToLower(strings.TrimSpace(raw))

	if idx := strings.Index(host, "://"); idx != -1 {
		host = host[idx+3:]
	}

	if idx := strings.IndexAny(host, "/?#"); idx != -1 {
		host = host[:idx]
	}

	if idx := strings.LastIndexByte(host, '@'); idx != -1 {
		host = host[idx+1:]
	}

	host = stripPort(host)

	return strings.Trim(host, ".")
}

// stripPort removes a trailing ":port". Bracketed and bare IPv6
// addresses keep their colons.
func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if idx := strings.Index(host, "]"); idx != -1 {
			return host[1:idx]
		}

		return host
	}

	if strings.Count(host, ":") > 1 {
		// more than one colon: IPv6 literal without brackets
		return host
	}

	idx := strings.LastIndexByte(host, ':')
	if idx == -1 {
		return host
	}

	for _, ch := range host[idx+1:] {
		if ch < '0' || ch > '9' {
			return host
		}
	}

	return host[:idx]
}

// IsIP reports whether host is an IPv4 or IPv6 literal.
func IsIP(host string) bool {
	return net.ParseIP(host) != nil
}

// ValidDomainName reports whether host can be represented as a DNS name.
func ValidDomainName(host string) bool {
	_, ok := dns.IsDomainName(host)

	return ok
}

// Labels normalizes raw and splits the hostname into its dot labels.
// Returns nil for empty input and for IP literals.
func Labels(raw string) []string {
	host := Normalize(raw)
	if host == "" || IsIP(host) {
		return nil
	}

	return strings.Split(host, ".")
}

// Reversed returns a new slice with the labels in TLD-first order.
func Reversed(labels []string) []string {
	reversed := make([]string, len(labels))

	for i, label := range labels {
		reversed[len(labels)-1-i] = label
	}

	return reversed
}
