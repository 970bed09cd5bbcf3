package domain

import "github.com/google/uuid"

// SearchFilter holds the predicates of a dictionary search.
// Empty sets mean "no constraint". Status and AssignedTo are honoured only
// when Editorial is set; public searches see published words only.
type SearchFilter struct {
	Query      string
	Categories []string
	Styles     []string
	Origins    []string
	Letters    []string
	Status     *WordStatus
	AssignedTo []uuid.UUID
	Editorial  bool
}

// HasQuery reports whether a free-text query is present.
func (f SearchFilter) HasQuery() bool {
	return f.Query != ""
}
