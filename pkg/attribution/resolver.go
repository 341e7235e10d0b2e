// Package attribution derives the click and browser identifiers, and the
// request context, that the conversion event is matched on.
package attribution

import (
	"fmt"
	"regexp"
	"time"

	"lead-gateway/pkg/models"
)

const (
	ClickCookie   = "_fbc"
	BrowserCookie = "_fbp"
	// ClickParam is the click-tracking query parameter appended to ad links
	ClickParam = "fbclid"
)

var browserIDPattern = regexp.MustCompile(`^fb\.1\.\d+\.\d+$`)

// Resolver resolves attribution identifiers for one request
type Resolver struct {
	now        func() time.Time
	sourcePath string
}

// NewResolver creates a Resolver. now may be nil to use the wall clock.
func NewResolver(sourcePath string, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now, sourcePath: sourcePath}
}

// ClickID prefers the explicit value, then the _fbc cookie, then a value
// synthesized from the raw fbclid. It returns "" when none is available.
func (r *Resolver) ClickID(req models.SubmissionRequest, meta models.RequestMetadata) string {
	if req.ClickID != "" {
		return req.ClickID
	}
	if v := meta.Cookies[ClickCookie]; v != "" {
		return v
	}
	raw := meta.ClickTrackingParam
	if raw == "" {
		raw = req.RawClickID
	}
	if raw == "" {
		return ""
	}
	return fmt.Sprintf("fb.1.%d.%s", r.now().Unix(), raw)
}

// BrowserID returns the explicit value or the _fbp cookie, whichever first
// matches fb.1.<digits>.<digits>, and "" otherwise.
func (r *Resolver) BrowserID(req models.SubmissionRequest, meta models.RequestMetadata) string {
	if ValidBrowserID(req.BrowserID) {
		return req.BrowserID
	}
	if v := meta.Cookies[BrowserCookie]; ValidBrowserID(v) {
		return v
	}
	return ""
}

// ValidBrowserID reports whether v has the fb.1.<digits>.<digits> syntax
func ValidBrowserID(v string) bool {
	return browserIDPattern.MatchString(v)
}

// Resolve fills the attribution and request-context fields of lead
func (r *Resolver) Resolve(req models.SubmissionRequest, meta models.RequestMetadata, lead *models.NormalizedLead) {
	lead.ClickID = r.ClickID(req, meta)
	lead.BrowserID = r.BrowserID(req, meta)
	lead.EventSourceURL = EventSourceURL(meta, r.sourcePath)
	lead.ClientIP = ClientIP(meta)
	lead.UserAgent = UserAgent(meta)
}
