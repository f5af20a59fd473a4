package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
)

// FindArtifacts queries artifacts by title substring and updated-since bound.
// Zero values mean no constraint on that axis.
func (x *UseCase) FindArtifacts(ctx context.Context, titleContains string, updatedSince time.Time) ([]*model.Artifact, error) {
	artifacts, err := x.clients.Artifacts().Find(ctx, titleContains, updatedSince)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query artifacts")
	}
	return artifacts, nil
}
