package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/model/checklist"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/utils/logging"
)

// UpdateArtifactAsset rewrites the asset block of a stored checklist with
// the supplied field values. Input values land as-is: an empty field clears
// the stored one. The hostname is mirrored onto the artifact metadata so
// list views do not need to parse the document.
func (x *UseCase) UpdateArtifactAsset(ctx context.Context, input *model.UpdateArtifactAssetInput) (*model.Artifact, error) {
	artifact, err := x.clients.Artifacts().GetBySystem(ctx, input.SystemGroupID, input.ArtifactID)
	if err != nil {
		return nil, err
	}

	doc, err := checklist.Parse(artifact.RawChecklist)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse stored checklist", goerr.V("artifactID", artifact.ID))
	}

	doc.Asset.HostName = input.HostName
	doc.Asset.HostFQDN = input.DomainName
	doc.Asset.TechArea = input.TechArea
	doc.Asset.AssetType = input.AssetType
	doc.Asset.Role = input.Role

	raw, err := checklist.Serialize(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize checklist", goerr.V("artifactID", artifact.ID))
	}

	artifact.RawChecklist = raw
	artifact.HostName = input.HostName
	artifact.UpdatedOn = logging.CtxTime(ctx)
	artifact.UpdatedBy = input.Caller.ID

	if err := x.clients.Artifacts().Replace(ctx, artifact.ID, artifact); err != nil {
		return nil, goerr.Wrap(err, "failed to replace artifact", goerr.V("artifactID", artifact.ID))
	}

	x.publish(ctx, types.SubjectSaveUpdate, []byte(artifact.ID))
	x.publishAudit(ctx, "update", "updated checklist "+artifact.Title, input.Caller)

	return artifact, nil
}
