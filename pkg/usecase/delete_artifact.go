package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
)

func (x *UseCase) DeleteArtifact(ctx context.Context, id types.ArtifactID, caller model.CallerIdentity) error {
	artifact, err := x.clients.Artifacts().Get(ctx, id)
	if err != nil {
		return err
	}

	if err := x.clients.Artifacts().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete artifact", goerr.V("id", id))
	}

	x.publish(ctx, types.SubjectChecklistDelete, []byte(artifact.ID))
	x.publish(ctx, types.SubjectSystemCountDelete, []byte(artifact.SystemGroupID))
	x.publishAudit(ctx, "delete", "deleted checklist "+artifact.Title, caller)

	return nil
}
