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

// UpdateSystemGroup overwrites title and description, replaces the attached
// scan file when a new one is supplied, and propagates a title change to
// subscribers. Renaming to the same trimmed title emits no event.
func (x *UseCase) UpdateSystemGroup(ctx context.Context, input *model.UpdateSystemGroupInput) (*model.SystemGroup, error) {
	if input.NessusFilename != "" && !validNessusFilename(input.NessusFilename) {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "scan file must have a .nessus extension",
			goerr.V("filename", input.NessusFilename),
		)
	}

	group, err := x.clients.SystemGroups().Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	titleChanged := false
	if title := strings.TrimSpace(input.Title); title != "" && title != strings.TrimSpace(group.Title) {
		group.Title = input.Title
		titleChanged = true
	}
	if input.Description != "" {
		group.Description = input.Description
	}
	if input.RawNessusFile != "" {
		group.RawNessusFile = checklist.Sanitize(input.RawNessusFile)
		group.NessusFilename = input.NessusFilename
	}

	group.UpdatedOn = logging.CtxTime(ctx)
	group.UpdatedBy = input.Caller.ID

	if err := x.clients.SystemGroups().Replace(ctx, input.ID, group); err != nil {
		return nil, goerr.Wrap(err, "failed to replace system group", goerr.V("id", input.ID))
	}

	if titleChanged {
		x.publish(ctx, types.SubjectSystemUpdate(input.ID), []byte(group.Title))
	}
	x.publishAudit(ctx, "update", "updated system group "+group.Title, input.Caller)

	return group, nil
}
