package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// IPFilterMiddleware blocks requests from blocklisted ranges. When the
// allowlist is non-empty only clients inside it get through. Entries are
// CIDR ranges or bare addresses; unparsable entries are ignored.
func IPFilterMiddleware(blocklist, allowlist []string) gin.HandlerFunc {
	blocked := parseRanges(blocklist)
	allowed := parseRanges(allowlist)

	return func(c *gin.Context) {
		clientIP := extractIP(c)
		if clientIP == nil {
			c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
			return
		}

		if contains(blocked, clientIP) {
			c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
			return
		}

		if len(allowed) > 0 && !contains(allowed, clientIP) {
			c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

func parseRanges(entries []string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 128
				if ip.To4() != nil {
					ip = ip.To4()
					bits = 32
				}
				out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			}
			continue
		}
		if _, ipNet, err := net.ParseCIDR(entry); err == nil {
			out = append(out, ipNet)
		}
	}
	return out
}

func contains(ranges []*net.IPNet, ip net.IP) bool {
	for _, ipNet := range ranges {
		if ipNet.Contains(ip) {
			return true
		}
	}
	return false
}

// extractIP extracts the client IP from the request
// Handles X-Forwarded-For header if behind proxy
func extractIP(c *gin.Context) net.IP {
	return net.ParseIP(getClientIP(c))
}
