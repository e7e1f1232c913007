package request

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var proxyHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP"}

// remoteIP resolves the client address. Proxy headers are consulted only when
// trusted. An empty string is returned when nothing parses.
func remoteIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyHeaders {
			if ip := normalizeIP(r.Header.Get(h)); ip != "" {
				return ip
			}
		}
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			for part := range strings.SplitSeq(fwd, ",") {
				if ip := normalizeIP(part); ip != "" {
					return ip
				}
			}
		}
		if ip := normalizeIP(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalizeIP(r.RemoteAddr)
	}
	return normalizeIP(host)
}

func normalizeIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
