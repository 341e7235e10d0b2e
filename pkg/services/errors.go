package services

import "errors"

// ErrConfigurationMissing means a channel's credentials are absent. It is
// returned before any network call is attempted.
var ErrConfigurationMissing = errors.New("channel configuration missing")
