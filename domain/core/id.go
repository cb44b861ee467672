package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
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

// Domain-specific ID types
type (
	ReportID   ID
	ArtifactID ID
)

func (id ReportID) String() string   { return ID(id).String() }
func (id ArtifactID) String() string { return ID(id).String() }
func (id ReportID) IsEmpty() bool    { return ID(id).IsEmpty() }
func (id ArtifactID) IsEmpty() bool  { return ID(id).IsEmpty() }

// NewReportID returns a fresh time-ordered report identifier
func NewReportID() ReportID { return ReportID(NewID()) }

// NewArtifactID returns a fresh time-ordered artifact identifier
func NewArtifactID() ArtifactID { return ArtifactID(NewID()) }

// ParseReportID parses a string into ReportID
func ParseReportID(s string) (ReportID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("report ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("report ID %q is not a UUID: %w", s, err)
	}
	return ReportID(s), nil
}
