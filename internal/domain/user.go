package domain

import (
	"time"

	"github.com/google/uuid"
)

// Editor is a principal known to the dictionary. Editors are identified by
// the subject of their access token; the row only anchors authorship and
// assignment references.
type Editor struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
