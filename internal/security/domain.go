// Package security provides request and URL validation for infosetu.
//
// The Domains validator restricts external search results to an explicit
// allow-list of official government hosts, with a deny-list that always wins.
// It is the in-process half of the defense-in-depth domain filter: the search
// provider is asked for the same restriction, and every returned URL is
// re-checked here because the provider's filter is not trusted.
package security

import (
	"fmt"
	"net/url"
	"strings"
)

// Domains validates result URLs against allow/deny host lists.
//
// Patterns:
//   - ".gov.in" matches any host ending in .gov.in
//   - "india.gov.in" matches india.gov.in and any subdomain of it
//
// Usage:
//
//	domains := security.NewDomains([]string{".gov.in"}, []string{"wikipedia.org"})
//	if err := domains.AllowURL(result.URL); err != nil {
//	    // drop the result
//	}
type Domains struct {
	allow []string
	deny  []string
}

// NewDomains creates a Domains validator. Patterns are normalized to
// lowercase. An empty allow list permits nothing.
func NewDomains(allow, deny []string) *Domains {
	return &Domains{
		allow: normalizePatterns(allow),
		deny:  normalizePatterns(deny),
	}
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AllowURL checks whether a result URL may be surfaced to the user.
// Returns an error naming the reason when the URL is rejected.
func (d *Domains) AllowURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("empty hostname")
	}

	return d.AllowHost(host)
}

// AllowHost checks a bare hostname against the deny list, then the allow list.
func (d *Domains) AllowHost(host string) error {
	host = strings.ToLower(strings.TrimSpace(host))

	for _, p := range d.deny {
		if matchDomain(host, p) {
			return fmt.Errorf("host %q is on the deny list (%s)", host, p)
		}
	}

	for _, p := range d.allow {
		if matchDomain(host, p) {
			return nil
		}
	}

	return fmt.Errorf("host %q is not on the allow list", host)
}

// matchDomain reports whether host matches a domain pattern.
// A leading dot means "any host under this suffix"; a bare domain matches
// itself and its subdomains.
func matchDomain(host, pattern string) bool {
	if strings.HasPrefix(pattern, ".") {
		return strings.HasSuffix(host, pattern) || host == strings.TrimPrefix(pattern, ".")
	}
	return host == pattern || strings.HasSuffix(host, "."+pattern)
}
