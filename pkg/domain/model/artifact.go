package model

import (
	"time"

	"github.com/stigbase/saver/pkg/domain/types"
)

// Artifact is a stored checklist document plus its metadata. RawChecklist is
// opaque to the stores; only the checklist package interprets it.
type Artifact struct {
	ID            types.ArtifactID
	SystemGroupID types.SystemGroupID
	Title         string
	Description   string
	HostName      string
	RawChecklist  string
	Created       time.Time
	UpdatedOn     time.Time
	CreatedBy     types.UserID
	UpdatedBy     types.UserID
}
