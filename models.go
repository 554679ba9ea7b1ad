package srfax

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IntString is an integer field the service renders either as a bare number
// or as a quoted string, depending on the method.
type IntString int64

// UnmarshalJSON accepts numeric and string encodings; an empty or null value
// decodes to zero.
func (n *IntString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*n = 0
	case float64:
		*n = IntString(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			*n = 0
			return nil
		}
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %q as integer: %w", val, err)
		}
		*n = IntString(parsed)
	default:
		return fmt.Errorf("unexpected type %T for integer field", v)
	}
	return nil
}

// Int64 returns the plain integer value.
func (n IntString) Int64() int64 { return int64(n) }

// InboxFax is one received fax as listed by GetFaxInbox.
type InboxFax struct {
	FileName      string    `json:"FileName"`
	ReceiveStatus string    `json:"ReceiveStatus"`
	Date          string    `json:"Date"`
	EpochTime     IntString `json:"EpochTime"`
	CallerID      string    `json:"CallerID"`
	RemoteID      string    `json:"RemoteID"`
	Pages         IntString `json:"Pages"`
	Size          IntString `json:"Size"`
	ViewedStatus  string    `json:"ViewedStatus"`
}

// Received is the reception time from the epoch field.
func (f InboxFax) Received() time.Time {
	return time.Unix(f.EpochTime.Int64(), 0)
}

// OutboxFax is one sent fax as listed by GetFaxOutbox.
type OutboxFax struct {
	FileName    string    `json:"FileName"`
	SentStatus  string    `json:"SentStatus"`
	DateQueued  string    `json:"DateQueued"`
	DateSent    string    `json:"DateSent"`
	EpochTime   IntString `json:"EpochTime"`
	ToFaxNumber string    `json:"ToFaxNumber"`
	Pages       IntString `json:"Pages"`
	Duration    IntString `json:"Duration"`
	RemoteID    string    `json:"RemoteID"`
	ErrorCode   string    `json:"ErrorCode"`
	AccountCode string    `json:"AccountCode"`
	Size        IntString `json:"Size"`
}

// Sent is the delivery time from the epoch field.
func (f OutboxFax) Sent() time.Time {
	return time.Unix(f.EpochTime.Int64(), 0)
}

// FaxStatus is the delivery state of one queued fax as reported by
// GetFaxStatus.
type FaxStatus struct {
	FileName    string    `json:"FileName"`
	SentStatus  string    `json:"SentStatus"`
	DateQueued  string    `json:"DateQueued"`
	DateSent    string    `json:"DateSent"`
	ToFaxNumber string    `json:"ToFaxNumber"`
	Pages       IntString `json:"Pages"`
	Duration    IntString `json:"Duration"`
	RemoteID    string    `json:"RemoteID"`
	ErrorCode   string    `json:"ErrorCode"`
	Size        IntString `json:"Size"`
}
