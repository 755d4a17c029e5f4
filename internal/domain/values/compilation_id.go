// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"

	"github.com/google/uuid"
)

// CompilationID uniquely identifies a single compile call.
// It ties metrics, cache entries and log lines back to one run.
type CompilationID struct {
	value uuid.UUID
}

// NewCompilationID creates a new random compilation ID
func NewCompilationID() CompilationID {
	return CompilationID{value: uuid.New()}
}

// ParseCompilationID parses a string into a CompilationID
func ParseCompilationID(s string) (CompilationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CompilationID{}, fmt.Errorf("invalid compilation ID: %w", err)
	}
	return CompilationID{value: id}, nil
}

// String returns the string representation
func (c CompilationID) String() string {
	return c.value.String()
}

// IsZero returns true if this is the zero value
func (c CompilationID) IsZero() bool {
	return c.value == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so JSON and YAML encoders render the UUID string.
func (c CompilationID) MarshalText() ([]byte, error) {
	return []byte(c.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *CompilationID) UnmarshalText(data []byte) error {
	id, err := ParseCompilationID(string(data))
	if err != nil {
		return err
	}
	*c = id
	return nil
}
