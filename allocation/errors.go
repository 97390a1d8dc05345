// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/mmm-reach/models"
)

// ErrSubmissionInFlight is returned when Submit is called while another
// submission is outstanding. The call has no effect.
var ErrSubmissionInFlight = errors.New("submission already in progress")

// Validation failure reasons
const (
	ReasonMissing    = "is required"
	ReasonNotNumeric = "must be a number"
	ReasonOutOfRange = "must be between 0 and 100"
	ReasonBadModel   = "model is not available"
)

// ValidationError reports the channel whose input was rejected. It is raised
// before any network activity.
type ValidationError struct {
	Channel models.Channel
	Value   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonBadModel {
		return fmt.Sprintf("model %q is not available for %s", e.Value, e.Channel)
	}
	return fmt.Sprintf("efficiency for %s %s", e.Channel, e.Reason)
}

// RequestError reports a failed call to the analysis service. Error returns
// the same generic message for every cause; StatusCode and Err carry the
// detail for logs.
type RequestError struct {
	StatusCode int
	Err        error
}

const requestFailedMessage = "failed to get prediction"

func (e *RequestError) Error() string {
	return requestFailedMessage
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Detail describes the cause for logging.
func (e *RequestError) Detail() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("status %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("status %d", e.StatusCode)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return requestFailedMessage
	}
}
