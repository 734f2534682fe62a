package report

import (
	"time"

	"github.com/google/uuid"
)

// Meta identifies one analysis run in the rendered outputs.
type Meta struct {
	RunID   uuid.UUID `json:"run_id"`
	Source  string    `json:"source"`
	Created time.Time `json:"created"`
}

// NewMeta returns metadata for a new run of source with a random run id.
func NewMeta(source string) Meta {
	return Meta{
		RunID:   uuid.New(),
		Source:  source,
		Created: time.Now().UTC().Truncate(time.Second),
	}
}
