package model

import (
	"time"

	"github.com/stigbase/saver/pkg/domain/types"
)

// SystemGroup is a named collection of artifacts, optionally carrying an
// attached Nessus scan file.
type SystemGroup struct {
	ID             types.SystemGroupID
	Title          string
	Description    string
	RawNessusFile  string
	NessusFilename string
	Created        time.Time
	UpdatedOn      time.Time
	CreatedBy      types.UserID
	UpdatedBy      types.UserID
}
