package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/utils/logging"
)

// DeleteSystemGroup removes a system group and cascades over its artifacts.
// The group is committed deleted first; each artifact is then removed
// best-effort with its own events. There is no cross-document transaction,
// so a failure mid-cascade leaves the group gone and some artifacts behind.
func (x *UseCase) DeleteSystemGroup(ctx context.Context, id types.SystemGroupID, caller model.CallerIdentity) error {
	group, err := x.clients.SystemGroups().Get(ctx, id)
	if err != nil {
		return err
	}

	if err := x.clients.SystemGroups().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete system group", goerr.V("id", id))
	}

	x.publishAudit(ctx, "delete", "deleted system group "+group.Title, caller)

	artifacts, err := x.clients.Artifacts().ListBySystem(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to list artifacts of deleted system group", goerr.V("id", id))
	}

	for _, artifact := range artifacts {
		x.deleteChildArtifact(ctx, artifact, caller)
	}

	return nil
}

// deleteChildArtifact removes one artifact during a cascade. A failed delete
// is logged and skipped so the remaining siblings still get processed.
func (x *UseCase) deleteChildArtifact(ctx context.Context, artifact *model.Artifact, caller model.CallerIdentity) {
	if err := x.clients.Artifacts().Delete(ctx, artifact.ID); err != nil {
		logging.From(ctx).Warn("failed to delete artifact in cascade, skipping",
			"artifactID", artifact.ID,
			"systemGroupID", artifact.SystemGroupID,
			"error", err,
		)
		return
	}

	x.publish(ctx, types.SubjectChecklistDelete, []byte(artifact.ID))
	x.publish(ctx, types.SubjectSystemCountDelete, []byte(artifact.SystemGroupID))
	x.publishAudit(ctx, "delete", "deleted checklist "+artifact.Title, caller)
}
