package ilias

import (
	"fmt"
	"net/url"
)

// Querypath is the canonical address of a page or action on the portal:
// a relative path plus its raw query string. The portal links to itself
// almost exclusively through such paths, so everything downstream (the
// reference graph, the mutation operations) keys on them instead of
// absolute URLs.
type Querypath string

// CanonicalizeLink turns an absolute or relative link emitted by the
// portal into a Querypath. The scheme and host are dropped; path and
// query are kept byte for byte, no re-encoding or query reordering, so
// that serializing the querypath again reproduces the original link
// text exactly.
func CanonicalizeLink(href string) (Querypath, error) {
	parsed, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("cannot canonicalize link %q: %w", href, err)
	}
	if parsed.RawQuery == "" {
		return Querypath(parsed.EscapedPath()), nil
	}
	return Querypath(parsed.EscapedPath() + "?" + parsed.RawQuery), nil
}

// RequestTarget returns the literal request target the transport should
// use for this querypath.
func (q Querypath) RequestTarget() string {
	return string(q)
}

func (q Querypath) String() string {
	return string(q)
}
