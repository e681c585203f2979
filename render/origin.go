package render

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Origin validation error codes.
const (
	CodeMissingTarget         = "missing_target"
	CodeMalformedTarget       = "malformed_target"
	CodeDisallowedScheme      = "disallowed_scheme"
	CodeMissingHost           = "missing_host"
	CodePrivateAddressBlocked = "private_address_blocked"
	CodeOriginNotAllowlisted  = "origin_not_allowlisted"
)

// Origin is a canonical scheme://host[:port] string produced by
// ValidateOrigin. It carries no path, query, or fragment and is only
// ever constructed from a candidate that passed every validation step,
// including allowlist membership.
type Origin string

func (o Origin) String() string { return string(o) }

// Allowlist is the ordered set of canonical origins the browser may be
// navigated to. It is read-only after construction; reconfiguration must
// replace the whole value, never mutate it in place.
type Allowlist []string

// Contains reports exact string membership.
func (a Allowlist) Contains(origin string) bool {
	for _, entry := range a {
		if entry == origin {
			return true
		}
	}
	return false
}

func (a Allowlist) String() string {
	return strings.Join(a, ", ")
}

// privateRanges covers RFC1918, loopback, link-local, multicast and the
// IANA-reserved blocks, plus their IPv6 equivalents. The cloud metadata
// endpoint 169.254.169.254 falls under link-local.
var privateRanges []*net.IPNet

func init() {
	cidrs := []string{
		"0.0.0.0/8",
		"10.0.0.0/8",
		"100.64.0.0/10",
		"127.0.0.0/8",
		"169.254.0.0/16",
		"172.16.0.0/12",
		"192.0.0.0/24",
		"192.0.2.0/24",
		"192.168.0.0/16",
		"198.18.0.0/15",
		"198.51.100.0/24",
		"203.0.113.0/24",
		"224.0.0.0/4",
		"240.0.0.0/4",
		"::/128",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
		"ff00::/8",
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("render: invalid private range %q: %v", cidr, err))
		}
		privateRanges = append(privateRanges, network)
	}
}

// isPrivateAddress reports whether host is a literal IP address inside a
// private, loopback, link-local or reserved range. Symbolic hostnames are
// never classified private here: no DNS resolution happens at validation
// time, so a name that resolves to an internal address is caught only by
// allowlist membership.
func isPrivateAddress(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ValidateOrigin validates a caller-supplied URL against the allowlist
// and returns its canonical origin. It is a pure function of its inputs:
// no network access, no DNS resolution, safe for unsynchronized
// concurrent use.
//
// Checks run in order and stop at the first failure: non-empty input,
// URL parse, http/https scheme, non-empty host, private-address block
// (with a literal localhost/127.0.0.1 carve-out for local development),
// then exact allowlist membership of the canonical origin. The carve-out
// never bypasses the membership check.
func ValidateOrigin(candidate string, allowlist Allowlist) (Origin, error) {
	if len(allowlist) == 0 {
		return "", NewError(KindInternal, "origin allowlist is not configured", nil)
	}

	if candidate == "" {
		return "", NewCodedError(KindValidation, CodeMissingTarget, "frontend_url is required", nil)
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", NewCodedError(KindValidation, CodeMalformedTarget,
			fmt.Sprintf("invalid frontend_url format: %v", err), err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", NewCodedError(KindValidation, CodeDisallowedScheme,
			fmt.Sprintf("invalid scheme: %s. Only http and https are allowed.", parsed.Scheme), nil)
	}

	// Hostnames are case-insensitive; canonicalize to lowercase so the
	// allowlist comparison is stable.
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", NewCodedError(KindValidation, CodeMissingHost,
			"invalid frontend_url: missing hostname", nil)
	}

	if isPrivateAddress(host) {
		// Local development exemption. An exempted host still has to
		// pass the allowlist membership check below.
		if host != "localhost" && host != "127.0.0.1" {
			return "", NewCodedError(KindValidation, CodePrivateAddressBlocked,
				fmt.Sprintf("private IP addresses are not allowed: %s", host), nil)
		}
	}

	origin := canonicalOrigin(parsed.Scheme, host, parsed.Port())

	if !allowlist.Contains(origin) {
		return "", NewCodedError(KindValidation, CodeOriginNotAllowlisted,
			fmt.Sprintf("frontend_url origin %q is not in the allowed list. Allowed origins: %s", origin, allowlist), nil)
	}

	return Origin(origin), nil
}

// canonicalOrigin builds scheme://host[:port], omitting the port when it
// is the scheme default. IPv6 literal hosts are re-bracketed.
func canonicalOrigin(scheme, host, port string) string {
	if port == "" {
		if scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	origin := scheme + "://" + host
	if (scheme == "http" && port != "80") || (scheme == "https" && port != "443") {
		origin += ":" + port
	}
	return origin
}
