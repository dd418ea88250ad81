package core

import "github.com/google/uuid"

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered
// generation, falling back to v4 if v7 is unavailable.
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
	// RunID identifies one extraction-plus-recalculation run, so repeated
	// runs feeding the consensus aggregator stay distinguishable.
	RunID ID
	// ReportID identifies a persisted verdict report.
	ReportID ID
)

func (id RunID) String() string    { return ID(id).String() }
func (id ReportID) String() string { return ID(id).String() }

// NewRunID creates a fresh run identifier.
func NewRunID() RunID { return RunID(NewID()) }

// NewReportID creates a fresh report identifier.
func NewReportID() ReportID { return ReportID(NewID()) }
