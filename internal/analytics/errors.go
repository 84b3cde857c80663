package analytics

import (
	"fmt"
	"time"
)

// InvalidRangeError rejects a filter whose bounds or ids cannot describe a window.
type InvalidRangeError struct {
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Reason != "" {
		return "invalid range: " + e.Reason
	}
	return fmt.Sprintf("invalid range: start %s is after end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

type UnknownIntervalError struct {
	Interval string
}

func (e *UnknownIntervalError) Error() string {
	return fmt.Sprintf("unknown interval %q: must be daily, weekly or monthly", e.Interval)
}

// MalformedRecordError is returned by a calculator that cannot trust its input.
// The orchestrator turns it into a partial-computation warning.
type MalformedRecordError struct {
	Kind   string // "order", "user" or "delivery"
	ID     int64
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record %d: %s", e.Kind, e.ID, e.Reason)
}
