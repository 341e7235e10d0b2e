package attribution

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lead-gateway/pkg/models"
)

func TestMetadataFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/submit?fbclid=XYZ", nil)
	req.Host = "lead.example"
	req.RemoteAddr = "198.51.100.4:5555"
	req.Header.Set("Cookie", "_fbc=fb.1.1.c; _fbp=fb.1.2.3; _fbp=fb.1.9.9")
	req.Header.Set("User-Agent", "ua")
	req.Header.Set("X-Forwarded-Proto", "https")

	meta := MetadataFromRequest(req)

	if meta.ClickTrackingParam != "XYZ" {
		t.Fatalf("ClickTrackingParam = %q, want XYZ", meta.ClickTrackingParam)
	}
	if meta.Cookies["_fbc"] != "fb.1.1.c" {
		t.Fatalf("_fbc = %q", meta.Cookies["_fbc"])
	}
	if meta.Cookies["_fbp"] != "fb.1.9.9" {
		t.Fatalf("_fbp = %q, want last occurrence", meta.Cookies["_fbp"])
	}
	if meta.Host != "lead.example" || meta.RemoteAddr != "198.51.100.4:5555" {
		t.Fatalf("host/remote = %q/%q", meta.Host, meta.RemoteAddr)
	}
	if meta.UserAgent != "ua" || meta.ForwardedProto != "https" {
		t.Fatalf("headers = %+v", meta)
	}
}

func TestEventSourceURL(t *testing.T) {
	tests := []struct {
		name string
		meta models.RequestMetadata
		want string
	}{
		{"forwarded host and proto", models.RequestMetadata{ForwardedHost: "a.com", Host: "b.com", ForwardedProto: "https"}, "https://a.com/telefon"},
		{"host header", models.RequestMetadata{Host: "b.com"}, "http://b.com/telefon"},
		{"non-https proto", models.RequestMetadata{Host: "b.com", ForwardedProto: "HTTPS"}, "http://b.com/telefon"},
		{"fallback", models.RequestMetadata{}, "http://fallback-domain.com/telefon"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EventSourceURL(tc.meta, "/telefon"); got != tc.want {
				t.Fatalf("EventSourceURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name string
		meta models.RequestMetadata
		want string
	}{
		{"first forwarded hop", models.RequestMetadata{ForwardedFor: " 203.0.113.7 , 10.0.0.1", RemoteAddr: "10.0.0.2:1"}, "203.0.113.7"},
		{"remote addr", models.RequestMetadata{RemoteAddr: "10.0.0.2:1234"}, "10.0.0.2"},
		{"remote addr without port", models.RequestMetadata{RemoteAddr: "10.0.0.2"}, "10.0.0.2"},
		{"blank forwarded", models.RequestMetadata{ForwardedFor: " ", RemoteAddr: "[::1]:80"}, "::1"},
		{"nothing", models.RequestMetadata{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClientIP(tc.meta); got != tc.want {
				t.Fatalf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(models.RequestMetadata{}); got != "unknown" {
		t.Fatalf("UserAgent = %q, want unknown", got)
	}
	if got := UserAgent(models.RequestMetadata{UserAgent: "ua"}); got != "ua" {
		t.Fatalf("UserAgent = %q, want ua", got)
	}
}
