package core

import (
	"time"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific key types
type (
	ReportKey     string
	TabKey        string
	CalculationID ID
)

func (k ReportKey) String() string      { return string(k) }
func (k TabKey) String() string         { return string(k) }
func (id CalculationID) String() string { return ID(id).String() }

// Now returns the current UTC timestamp used for all domain records
func Now() time.Time {
	return time.Now().UTC()
}
