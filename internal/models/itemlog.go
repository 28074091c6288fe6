package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageMaxLen bounds log messages.
const MessageMaxLen = 2047

// LogEntry is the public shape of an immutable audit record. Date is the
// logical event date and may be supplied by the caller; the operator
// reference is resolved to a display name (null when missing or unnamed).
type LogEntry struct {
	ID           uuid.UUID  `json:"id"`
	ItemID       *uuid.UUID `json:"item_id"`
	Message      string     `json:"message"`
	Date         time.Time  `json:"date"`
	OperatorName *string    `json:"operator_name"`
}

// ItemLogsResponse lists an item's logs newest-first.
type ItemLogsResponse struct {
	ItemID uuid.UUID  `json:"item_id"`
	Data   []LogEntry `json:"data"`
	Count  int        `json:"count"`
}

// CreateLogRequest is the request body for appending a log entry to an
// item. Date defaults to the current time when omitted.
type CreateLogRequest struct {
	Message string     `json:"message"`
	Date    *time.Time `json:"date,omitempty"`
}

func (r *CreateLogRequest) Validate() error {
	if len(r.Message) > MessageMaxLen {
		return fmt.Errorf("message must be at most %d characters", MessageMaxLen)
	}
	return nil
}
