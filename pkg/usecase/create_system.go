package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/model/checklist"
	"github.com/stigbase/saver/pkg/repository"
	"github.com/stigbase/saver/pkg/utils/logging"
)

// validNessusFilename gates scan-file uploads on the .nessus suffix.
func validNessusFilename(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".nessus")
}

func (x *UseCase) CreateSystemGroup(ctx context.Context, input *model.CreateSystemGroupInput) (*model.SystemGroup, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "system group title is required")
	}
	if input.NessusFilename != "" && !validNessusFilename(input.NessusFilename) {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "scan file must have a .nessus extension",
			goerr.V("filename", input.NessusFilename),
		)
	}

	now := logging.CtxTime(ctx)
	group := &model.SystemGroup{
		Title:          input.Title,
		Description:    input.Description,
		NessusFilename: input.NessusFilename,
		RawNessusFile:  checklist.Sanitize(input.RawNessusFile),
		Created:        now,
		UpdatedOn:      now,
		CreatedBy:      input.Caller.ID,
		UpdatedBy:      input.Caller.ID,
	}

	created, err := x.clients.SystemGroups().Add(ctx, group)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add system group")
	}

	x.publishAudit(ctx, "create", "created system group "+created.Title, input.Caller)

	return created, nil
}
