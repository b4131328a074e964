package models

import "errors"

// Status is the activation state shared by products and product groups.
// It is stored and transported as an integer: 0 = INACTIVE, 1 = ACTIVE.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

// ErrInvalidStatus is returned when an integer outside {0, 1} is mapped to a Status.
var ErrInvalidStatus = errors.New("invalid status: use 0 (INACTIVE) or 1 (ACTIVE)")

// StatusFromInt maps an integer code onto a Status. The mapping is total:
// every code outside {0, 1} yields ErrInvalidStatus, never a silent default.
func StatusFromInt(code int) (Status, error) {
	switch code {
	case 0:
		return StatusInactive, nil
	case 1:
		return StatusActive, nil
	default:
		return 0, ErrInvalidStatus
	}
}

// Valid reports whether s is one of the declared Status values.
func (s Status) Valid() bool {
	return s == StatusInactive || s == StatusActive
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusInactive:
		return "INACTIVE"
	default:
		return "UNKNOWN"
	}
}
