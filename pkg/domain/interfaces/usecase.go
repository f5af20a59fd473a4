package interfaces

import (
	"context"
	"time"

	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
)

type UseCase interface {
	CreateSystemGroup(ctx context.Context, input *model.CreateSystemGroupInput) (*model.SystemGroup, error)
	UpdateSystemGroup(ctx context.Context, input *model.UpdateSystemGroupInput) (*model.SystemGroup, error)
	DeleteSystemGroup(ctx context.Context, id types.SystemGroupID, caller model.CallerIdentity) error
	DeleteSystemChecklists(ctx context.Context, id types.SystemGroupID, artifactIDs []types.ArtifactID, caller model.CallerIdentity) error

	CreateArtifact(ctx context.Context, input *model.CreateArtifactInput) (*model.Artifact, error)
	UpdateArtifactAsset(ctx context.Context, input *model.UpdateArtifactAssetInput) (*model.Artifact, error)
	DeleteArtifact(ctx context.Context, id types.ArtifactID, caller model.CallerIdentity) error
	FindArtifacts(ctx context.Context, titleContains string, updatedSince time.Time) ([]*model.Artifact, error)
}
