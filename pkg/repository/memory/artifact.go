package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/repository"
)

func (r *artifactRepository) Get(ctx context.Context, id types.ArtifactID) (*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifact, exists := r.artifacts[string(id)]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "artifact not found",
			goerr.V("artifactID", id),
		)
	}

	return copyArtifact(artifact), nil
}

func (r *artifactRepository) GetBySystem(ctx context.Context, systemGroupID types.SystemGroupID, id types.ArtifactID) (*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifact, exists := r.artifacts[string(id)]
	if !exists || artifact.SystemGroupID != systemGroupID {
		return nil, goerr.Wrap(repository.ErrNotFound, "artifact not found in system",
			goerr.V("systemGroupID", systemGroupID),
			goerr.V("artifactID", id),
		)
	}

	return copyArtifact(artifact), nil
}

func (r *artifactRepository) List(ctx context.Context) ([]*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var artifacts []*model.Artifact
	for _, artifact := range r.artifacts {
		artifacts = append(artifacts, copyArtifact(artifact))
	}

	return artifacts, nil
}

func (r *artifactRepository) ListBySystem(ctx context.Context, systemGroupID types.SystemGroupID) ([]*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var artifacts []*model.Artifact
	for _, artifact := range r.artifacts {
		if artifact.SystemGroupID == systemGroupID {
			artifacts = append(artifacts, copyArtifact(artifact))
		}
	}

	return artifacts, nil
}

func (r *artifactRepository) Find(ctx context.Context, titleContains string, updatedSince time.Time) ([]*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var artifacts []*model.Artifact
	for _, artifact := range r.artifacts {
		if strings.Contains(artifact.Title, titleContains) && !artifact.UpdatedOn.Before(updatedSince) {
			artifacts = append(artifacts, copyArtifact(artifact))
		}
	}

	return artifacts, nil
}

func (r *artifactRepository) Add(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyArtifact(artifact)
	stored.ID = types.ArtifactID(uuid.NewString())
	r.artifacts[string(stored.ID)] = stored

	return copyArtifact(stored), nil
}

func (r *artifactRepository) Replace(ctx context.Context, id types.ArtifactID, artifact *model.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artifacts[string(id)]; !exists {
		return goerr.Wrap(repository.ErrNotFound, "artifact not found",
			goerr.V("artifactID", id),
		)
	}

	stored := copyArtifact(artifact)
	stored.ID = id
	r.artifacts[string(id)] = stored

	return nil
}

func (r *artifactRepository) Delete(ctx context.Context, id types.ArtifactID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artifacts[string(id)]; !exists {
		return goerr.Wrap(repository.ErrNotFound, "artifact not found",
			goerr.V("artifactID", id),
		)
	}

	delete(r.artifacts, string(id))

	return nil
}
