package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/model/checklist"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/repository"
	"github.com/stigbase/saver/pkg/utils/logging"
)

// CreateArtifact stores an uploaded checklist. The raw document is
// normalized to canonical form before storage so every stored checklist
// has the same shape regardless of source.
func (x *UseCase) CreateArtifact(ctx context.Context, input *model.CreateArtifactInput) (*model.Artifact, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "artifact title is required")
	}

	now := logging.CtxTime(ctx)
	artifact := &model.Artifact{
		SystemGroupID: input.SystemGroupID,
		Title:         input.Title,
		Description:   input.Description,
		HostName:      input.HostName,
		RawChecklist:  checklist.Sanitize(input.RawChecklist),
		Created:       now,
		UpdatedOn:     now,
		CreatedBy:     input.Caller.ID,
		UpdatedBy:     input.Caller.ID,
	}

	created, err := x.clients.Artifacts().Add(ctx, artifact)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add artifact")
	}

	x.publish(ctx, types.SubjectSaveNew, []byte(created.ID))
	x.publishAudit(ctx, "create", "uploaded checklist "+created.Title, input.Caller)

	return created, nil
}
