package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ReadingID represents a stored telemetry reading identifier
type ReadingID string

// String returns the string representation
func (id ReadingID) String() string {
	return string(id)
}

// Validate checks if the reading ID is non-empty
func (id ReadingID) Validate() error {
	if id == "" {
		return goerr.New("reading ID cannot be empty")
	}
	return nil
}

// NewReadingID creates a new ReadingID using UUID v7 so that IDs sort by creation time
func NewReadingID() (ReadingID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate reading ID")
	}
	return ReadingID(id.String()), nil
}

// DeviceID represents the identifier of the sensor device that sent a reading
type DeviceID string

// String returns the string representation
func (id DeviceID) String() string {
	return string(id)
}

// CounterName represents a physical service counter
type CounterName string

// String returns the string representation
func (n CounterName) String() string {
	return string(n)
}
