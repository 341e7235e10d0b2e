package meta

// EventsRequest is the body of a Conversions API events call
type EventsRequest struct {
	Data          []Event `json:"data"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}

// Event is one server-side conversion event
type Event struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	ActionSource   string     `json:"action_source"`
	EventSourceURL string     `json:"event_source_url"`
	EventID        string     `json:"event_id"`
	UserData       UserData   `json:"user_data"`
	CustomData     CustomData `json:"custom_data"`
}

// UserData carries hashed PII and unhashed matching keys
type UserData struct {
	Phone           []string `json:"ph"`
	ExternalID      []string `json:"external_id,omitempty"`
	ClickID         string   `json:"fbc,omitempty"`
	BrowserID       string   `json:"fbp,omitempty"`
	ClientIPAddress string   `json:"client_ip_address"`
	ClientUserAgent string   `json:"client_user_agent"`
}

type CustomData struct {
	ContentCategory string `json:"content_category"`
	ContentName     string `json:"content_name"`
}

// EventsResponse is the Conversions API answer
type EventsResponse struct {
	EventsReceived int      `json:"events_received"`
	Messages       []string `json:"messages"`
	FBTraceID      string   `json:"fbtrace_id"`
}

type errorResponse struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}
