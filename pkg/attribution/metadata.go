package attribution

import (
	"net"
	"net/http"
	"strings"

	"lead-gateway/pkg/models"
)

// FallbackHost is used when neither X-Forwarded-Host nor Host is present.
const FallbackHost = "fallback-domain.com"

// MetadataFromRequest captures the headers, cookies and query parameters the
// resolver needs
func MetadataFromRequest(r *http.Request) models.RequestMetadata {
	// A repeated cookie name resolves to its last occurrence.
	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}

	return models.RequestMetadata{
		Cookies:            cookies,
		ClickTrackingParam: r.URL.Query().Get(ClickParam),
		Host:               r.Host,
		ForwardedHost:      r.Header.Get("X-Forwarded-Host"),
		ForwardedProto:     r.Header.Get("X-Forwarded-Proto"),
		ForwardedFor:       r.Header.Get("X-Forwarded-For"),
		RemoteAddr:         r.RemoteAddr,
		UserAgent:          r.Header.Get("User-Agent"),
	}
}

// EventSourceURL rebuilds the page URL the lead was submitted from
func EventSourceURL(meta models.RequestMetadata, path string) string {
	host := meta.ForwardedHost
	if host == "" {
		host = meta.Host
	}
	if host == "" {
		host = FallbackHost
	}

	proto := "http"
	if meta.ForwardedProto == "https" {
		proto = "https"
	}
	return proto + "://" + host + path
}

// ClientIP returns the first X-Forwarded-For hop, or the socket peer address
func ClientIP(meta models.RequestMetadata) string {
	if first, _, _ := strings.Cut(meta.ForwardedFor, ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	if meta.RemoteAddr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(meta.RemoteAddr)
	if err != nil {
		return meta.RemoteAddr
	}
	return host
}

// UserAgent returns the caller's user agent or "unknown"
func UserAgent(meta models.RequestMetadata) string {
	if meta.UserAgent == "" {
		return "unknown"
	}
	return meta.UserAgent
}
