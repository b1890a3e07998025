package utils

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

// netAddrPattern is the pattern for parsing the IP address out of a net.Addr. This is
// needed because the net.Addr includes a port number at the end
var netAddrPattern = regexp.MustCompile(`^(.*):\d+$`)

// GetIpAddress gets the client IP address from a set of headers and a net address
func GetIpAddress(
	header http.Header,
	addr net.Addr,
) string {

	// When behind a reverse proxy, the real client IP arrives in a forwarding header.
	// X-Forwarded-For can contain a comma-separated chain; the first entry is the client.
	if header != nil {
		if ip := header.Get("CF-Connecting-IP"); len(ip) > 0 {
			return ip
		}
		if fwd := header.Get("X-Forwarded-For"); len(fwd) > 0 {
			if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); len(ip) > 0 {
				return ip
			}
		}
	}

	// If the address is nil, return an empty string
	if addr == nil {
		return ""
	}

	// Match against the pattern in order to pull the IP address out of the address
	submatch := netAddrPattern.FindStringSubmatch(addr.String())
	if len(submatch) < 2 {
		return ""
	}

	// Clean up the IP address. These only have an effect in the case of IPv6 addresses
	ip := submatch[1]
	ip = strings.Trim(ip, "[]")
	ip = strings.TrimPrefix(ip, "::ffff:")
	return ip

}
