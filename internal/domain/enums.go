package domain

// WordStatus is the editorial workflow state of a word.
type WordStatus string

const (
	WordStatusImported    WordStatus = "imported"
	WordStatusIncluded    WordStatus = "included"
	WordStatusPreredacted WordStatus = "preredacted"
	WordStatusRedacted    WordStatus = "redacted"
	WordStatusReviewed    WordStatus = "reviewed"
	WordStatusPublished   WordStatus = "published"

	// Side states, outside the linear workflow.
	WordStatusArchaic     WordStatus = "archaic"
	WordStatusQuarantined WordStatus = "quarantined"
	WordStatusRejected    WordStatus = "rejected"
)

// WorkflowStatuses lists the linear workflow in order.
var WorkflowStatuses = []WordStatus{
	WordStatusImported,
	WordStatusIncluded,
	WordStatusPreredacted,
	WordStatusRedacted,
	WordStatusReviewed,
	WordStatusPublished,
}

// DefaultWordStatus is assigned to words created without an explicit status.
const DefaultWordStatus = WordStatusImported

func (s WordStatus) String() string { return string(s) }

func (s WordStatus) IsValid() bool {
	switch s {
	case WordStatusImported, WordStatusIncluded, WordStatusPreredacted,
		WordStatusRedacted, WordStatusReviewed, WordStatusPublished,
		WordStatusArchaic, WordStatusQuarantined, WordStatusRejected:
		return true
	}
	return false
}

// IsPublic reports whether words in this status are visible on the public path.
func (s WordStatus) IsPublic() bool {
	return s == WordStatusPublished
}

// MatchClass is the rank a search result earns.
type MatchClass string

const (
	MatchExact      MatchClass = "exact"
	MatchPartial    MatchClass = "partial"
	MatchDefinition MatchClass = "definition"
	MatchFilter     MatchClass = "filter"
)

func (m MatchClass) String() string { return string(m) }

// Rank orders match classes: exact < partial < definition < filter.
// Unknown classes sort last.
func (m MatchClass) Rank() int {
	switch m {
	case MatchExact:
		return 0
	case MatchPartial:
		return 1
	case MatchDefinition:
		return 2
	case MatchFilter:
		return 3
	}
	return 4
}
