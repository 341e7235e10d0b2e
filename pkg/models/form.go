package models

// Represents the raw body posted by the phone verification form
type SubmissionForm struct {
	TC       string `json:"tc" form:"tc"`
	Password string `json:"password" form:"password"`
	Phone    string `json:"phone" form:"phone"`
	EventID  string `json:"eventID" form:"eventID"`
	FBP      string `json:"fbp" form:"fbp"`
	FBC      string `json:"fbc" form:"fbc"`
	// ClickID is the raw fbclid value the front-end lifted from its own URL
	ClickID string `json:"clickID" form:"clickID"`

	// Mistyped lists body keys whose JSON value was present but not a string
	Mistyped []string `json:"-" form:"-"`
}

// IsMistyped reports whether key was sent with a non-string JSON value
func (f SubmissionForm) IsMistyped(key string) bool {
	for _, k := range f.Mistyped {
		if k == key {
			return true
		}
	}
	return false
}

// SubmissionFormFromJSON builds a form from a decoded JSON object. Non-string
// values are recorded in Mistyped and leave the field empty.
func SubmissionFormFromJSON(body map[string]any) SubmissionForm {
	var form SubmissionForm
	fields := []struct {
		key string
		dst *string
	}{
		{"tc", &form.TC},
		{"password", &form.Password},
		{"phone", &form.Phone},
		{"eventID", &form.EventID},
		{"fbp", &form.FBP},
		{"fbc", &form.FBC},
		{"clickID", &form.ClickID},
	}
	for _, f := range fields {
		v, ok := body[f.key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			*f.dst = s
			continue
		}
		form.Mistyped = append(form.Mistyped, f.key)
	}
	return form
}

// SubmissionRequest is a form whose mandatory fields all passed validation
type SubmissionRequest struct {
	NationalID string
	Passcode   string
	Phone      string
	EventID    string

	BrowserID string
	ClickID   string
	// RawClickID is an fbclid supplied in the body rather than the query
	RawClickID string
}

// RequestMetadata carries the parts of the inbound HTTP request the
// attribution event is derived from
type RequestMetadata struct {
	Cookies            map[string]string
	ClickTrackingParam string
	Host               string
	ForwardedHost      string
	ForwardedProto     string
	ForwardedFor       string
	RemoteAddr         string
	UserAgent          string
}

// NormalizedLead is the PII-safe view of a submission sent for attribution
type NormalizedLead struct {
	HashedPhone      string
	HashedNationalID string
	EventSourceURL   string
	ClientIP         string
	UserAgent        string
	ClickID          string
	BrowserID        string
}
