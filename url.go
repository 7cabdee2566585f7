package webscrape

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes rawURL relative to baseURL into the string used
// as the crawl's deduplication key.
//
// The fragment is dropped, trailing path separators are collapsed (the root
// path "/" is kept), and a reference without an authority takes the scheme
// and authority of baseURL (a protocol-relative reference takes only the
// scheme). References are resolved per RFC 3986, so dot
// segments are removed. Hosts are lowercased and default ports dropped.
//
// Returns EINVALID if rawURL cannot be parsed, cannot be resolved to an
// absolute URL, or uses a scheme other than http or https.
func NormalizeURL(rawURL, baseURL string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	var u *url.URL
	if ref.Scheme == "" {
		base, err := url.Parse(baseURL)
		if err != nil {
			return "", Errorf(EINVALID, "invalid base URL %q: %v", baseURL, err)
		}
		if base.Host == "" {
			return "", Errorf(EINVALID, "base URL %q has no host", baseURL)
		}
		u = base.ResolveReference(ref)
	} else {
		// An empty base still cleans dot segments from absolute references.
		u = (&url.URL{}).ResolveReference(ref)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported scheme %q in URL %q", u.Scheme, rawURL)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}

	u.Host = canonicalHost(u)
	u.Fragment = ""
	u.RawFragment = ""
	u.ForceQuery = false

	// Only literal separators are trimmed; an escaped %2F is path data.
	escaped := u.EscapedPath()
	if trimmed := strings.TrimRight(escaped, "/"); trimmed != escaped {
		p, err := url.PathUnescape(trimmed)
		if err != nil {
			return "", Errorf(EINVALID, "invalid path in URL %q: %v", rawURL, err)
		}
		u.Path, u.RawPath = p, trimmed
	}
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}

	return u.String(), nil
}

// canonicalHost lowercases the authority and removes the scheme's default port.
func canonicalHost(u *url.URL) string {
	host := strings.ToLower(u.Host)
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		host = strings.TrimSuffix(host, ":"+port)
	}
	return host
}

// SameOrigin reports whether rawURL shares its authority (host and port)
// with baseURL. A URL without an authority is relative and therefore
// same-origin. Unparsable input is never same-origin.
func SameOrigin(rawURL, baseURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host == "" {
		return true
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}
