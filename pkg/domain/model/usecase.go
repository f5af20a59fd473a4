package model

import "github.com/stigbase/saver/pkg/domain/types"

type CreateSystemGroupInput struct {
	Title          string
	Description    string
	NessusFilename string
	RawNessusFile  string
	Caller         CallerIdentity
}

type UpdateSystemGroupInput struct {
	ID             types.SystemGroupID
	Title          string
	Description    string
	NessusFilename string
	RawNessusFile  string
	Caller         CallerIdentity
}

type CreateArtifactInput struct {
	SystemGroupID types.SystemGroupID
	Title         string
	Description   string
	HostName      string
	RawChecklist  string
	Caller        CallerIdentity
}

// UpdateArtifactAssetInput carries the five mutable asset fields. The values
// overwrite the checklist's asset block as supplied: an empty field clears
// the stored value, there is no leave-unchanged option.
type UpdateArtifactAssetInput struct {
	SystemGroupID types.SystemGroupID
	ArtifactID    types.ArtifactID
	HostName      string
	DomainName    string
	TechArea      string
	AssetType     string
	Role          string
	Caller        CallerIdentity
}
