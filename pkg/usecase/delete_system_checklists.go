package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/utils/logging"
)

// DeleteSystemChecklists removes the named artifacts under a system group,
// or every artifact under it when no ids are given. The group itself stays.
// Per-item semantics match the cascade: failures are logged and skipped.
func (x *UseCase) DeleteSystemChecklists(ctx context.Context, id types.SystemGroupID, artifactIDs []types.ArtifactID, caller model.CallerIdentity) error {
	if _, err := x.clients.SystemGroups().Get(ctx, id); err != nil {
		return err
	}

	var targets []*model.Artifact
	if len(artifactIDs) == 0 {
		all, err := x.clients.Artifacts().ListBySystem(ctx, id)
		if err != nil {
			return goerr.Wrap(err, "failed to list artifacts of system group", goerr.V("id", id))
		}
		targets = all
	} else {
		for _, artifactID := range artifactIDs {
			artifact, err := x.clients.Artifacts().GetBySystem(ctx, id, artifactID)
			if err != nil {
				logging.From(ctx).Warn("artifact not found under system group, skipping",
					"artifactID", artifactID,
					"systemGroupID", id,
					"error", err,
				)
				continue
			}
			targets = append(targets, artifact)
		}
	}

	for _, artifact := range targets {
		x.deleteChildArtifact(ctx, artifact, caller)
	}

	return nil
}
