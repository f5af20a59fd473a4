package interfaces

import (
	"context"
	"time"

	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
)

// ArtifactRepository persists checklist artifacts. Add assigns and returns
// the stored identifier. Get/Replace/Delete report repository.ErrNotFound
// when the resolved id matches no document; a write or delete that does not
// take effect on an existing document is a distinct error.
type ArtifactRepository interface {
	Get(ctx context.Context, id types.ArtifactID) (*model.Artifact, error)
	GetBySystem(ctx context.Context, systemGroupID types.SystemGroupID, id types.ArtifactID) (*model.Artifact, error)
	List(ctx context.Context) ([]*model.Artifact, error)
	ListBySystem(ctx context.Context, systemGroupID types.SystemGroupID) ([]*model.Artifact, error)
	Find(ctx context.Context, titleContains string, updatedSince time.Time) ([]*model.Artifact, error)
	Add(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error)
	Replace(ctx context.Context, id types.ArtifactID, artifact *model.Artifact) error
	Delete(ctx context.Context, id types.ArtifactID) error
}

// SystemGroupRepository persists system groups with the same contract.
type SystemGroupRepository interface {
	Get(ctx context.Context, id types.SystemGroupID) (*model.SystemGroup, error)
	List(ctx context.Context) ([]*model.SystemGroup, error)
	Add(ctx context.Context, group *model.SystemGroup) (*model.SystemGroup, error)
	Replace(ctx context.Context, id types.SystemGroupID, group *model.SystemGroup) error
	Delete(ctx context.Context, id types.SystemGroupID) error
}
