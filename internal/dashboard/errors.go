package dashboard

import (
	"errors"
	"fmt"
)

var ErrUnknownView = errors.New("unknown view")

// DataUnavailableError fails a whole request: the gateway could not supply
// one of the record sets the view needs.
type DataUnavailableError struct {
	Source string // "orders", "users", "deliveries" or "baseline"
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// PartialComputationWarning records a section left out of a Result because
// its calculator rejected the input.
type PartialComputationWarning struct {
	Section string `json:"section"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func newWarning(section string, err error) PartialComputationWarning {
	return PartialComputationWarning{Section: section, Message: err.Error(), Err: err}
}

func (w PartialComputationWarning) Error() string {
	return fmt.Sprintf("section %s omitted: %s", w.Section, w.Message)
}

func (w PartialComputationWarning) Unwrap() error {
	return w.Err
}
