// Package testhelper provides a shared contract suite that every pair of
// repository implementations must pass.
package testhelper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/stigbase/saver/pkg/domain/interfaces"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/repository"
)

// TestAll runs the full contract suite against the given repositories.
func TestAll(t *testing.T, artifacts interfaces.ArtifactRepository, groups interfaces.SystemGroupRepository) {
	t.Run("SystemGroupCRUD", func(t *testing.T) {
		TestSystemGroupCRUD(t, groups)
	})
	t.Run("ArtifactCRUD", func(t *testing.T) {
		TestArtifactCRUD(t, artifacts)
	})
	t.Run("ArtifactQueries", func(t *testing.T) {
		TestArtifactQueries(t, artifacts)
	})
	t.Run("MalformedIdentifiers", func(t *testing.T) {
		TestMalformedIdentifiers(t, artifacts, groups)
	})
}

func TestSystemGroupCRUD(t *testing.T, groups interfaces.SystemGroupRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	created, err := groups.Add(ctx, &model.SystemGroup{
		Title:       "Site Alpha",
		Description: "primary site",
		Created:     now,
		UpdatedOn:   now,
		CreatedBy:   "user-1",
	})
	gt.NoError(t, err)
	gt.V(t, string(created.ID)).NotEqual("")

	fetched, err := groups.Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.V(t, fetched.Title).Equal("Site Alpha")
	gt.V(t, fetched.Description).Equal("primary site")
	gt.V(t, string(fetched.CreatedBy)).Equal("user-1")

	fetched.Description = "renamed site"
	gt.NoError(t, groups.Replace(ctx, created.ID, fetched))

	replaced, err := groups.Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.V(t, replaced.Description).Equal("renamed site")
	// untouched fields survive a read-modify-write cycle
	gt.V(t, replaced.Title).Equal("Site Alpha")

	all, err := groups.List(ctx)
	gt.NoError(t, err)
	gt.True(t, len(all) >= 1)

	gt.NoError(t, groups.Delete(ctx, created.ID))

	_, err = groups.Get(ctx, created.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	err = groups.Delete(ctx, created.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestArtifactCRUD(t *testing.T, artifacts interfaces.ArtifactRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	created, err := artifacts.Add(ctx, &model.Artifact{
		SystemGroupID: "system-crud",
		Title:         "Host1 checklist",
		HostName:      "host1",
		RawChecklist:  "<A><B>1</B></A>",
		Created:       now,
		UpdatedOn:     now,
		CreatedBy:     "user-1",
	})
	gt.NoError(t, err)
	gt.V(t, string(created.ID)).NotEqual("")

	fetched, err := artifacts.Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.V(t, fetched.Title).Equal("Host1 checklist")
	gt.V(t, fetched.RawChecklist).Equal("<A><B>1</B></A>")

	bySystem, err := artifacts.GetBySystem(ctx, "system-crud", created.ID)
	gt.NoError(t, err)
	gt.V(t, bySystem.ID).Equal(created.ID)

	_, err = artifacts.GetBySystem(ctx, "other-system", created.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	fetched.HostName = "host2"
	gt.NoError(t, artifacts.Replace(ctx, created.ID, fetched))

	replaced, err := artifacts.Get(ctx, created.ID)
	gt.NoError(t, err)
	gt.V(t, replaced.HostName).Equal("host2")
	gt.V(t, replaced.RawChecklist).Equal("<A><B>1</B></A>")

	gt.NoError(t, artifacts.Delete(ctx, created.ID))

	_, err = artifacts.Get(ctx, created.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	err = artifacts.Delete(ctx, created.ID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestArtifactQueries(t *testing.T, artifacts interfaces.ArtifactRepository) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	old, err := artifacts.Add(ctx, &model.Artifact{
		SystemGroupID: "system-query",
		Title:         "router baseline",
		Created:       base,
		UpdatedOn:     base,
	})
	gt.NoError(t, err)

	recent, err := artifacts.Add(ctx, &model.Artifact{
		SystemGroupID: "system-query",
		Title:         "router hardening",
		Created:       base.AddDate(0, 1, 0),
		UpdatedOn:     base.AddDate(0, 1, 0),
	})
	gt.NoError(t, err)

	other, err := artifacts.Add(ctx, &model.Artifact{
		SystemGroupID: "system-other",
		Title:         "switch baseline",
		Created:       base.AddDate(0, 1, 0),
		UpdatedOn:     base.AddDate(0, 1, 0),
	})
	gt.NoError(t, err)

	found, err := artifacts.Find(ctx, "router", base.AddDate(0, 0, 15))
	gt.NoError(t, err)
	gt.V(t, len(found)).Equal(1)
	gt.V(t, found[0].ID).Equal(recent.ID)

	found, err = artifacts.Find(ctx, "router", base)
	gt.NoError(t, err)
	gt.V(t, len(found)).Equal(2)

	members, err := artifacts.ListBySystem(ctx, "system-query")
	gt.NoError(t, err)
	gt.V(t, len(members)).Equal(2)

	for _, id := range []types.ArtifactID{old.ID, recent.ID, other.ID} {
		gt.NoError(t, artifacts.Delete(ctx, id))
	}
}

// TestMalformedIdentifiers checks that garbage ids degrade to not-found
// instead of raising store errors.
func TestMalformedIdentifiers(t *testing.T, artifacts interfaces.ArtifactRepository, groups interfaces.SystemGroupRepository) {
	ctx := context.Background()

	for _, id := range []string{"", "not-an-id", "12345", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := artifacts.Get(ctx, types.ArtifactID(id))
		gt.True(t, errors.Is(err, repository.ErrNotFound))

		err = artifacts.Delete(ctx, types.ArtifactID(id))
		gt.True(t, errors.Is(err, repository.ErrNotFound))

		err = artifacts.Replace(ctx, types.ArtifactID(id), &model.Artifact{Title: "x"})
		gt.True(t, errors.Is(err, repository.ErrNotFound))

		_, err = groups.Get(ctx, types.SystemGroupID(id))
		gt.True(t, errors.Is(err, repository.ErrNotFound))

		err = groups.Delete(ctx, types.SystemGroupID(id))
		gt.True(t, errors.Is(err, repository.ErrNotFound))

		err = groups.Replace(ctx, types.SystemGroupID(id), &model.SystemGroup{Title: "x"})
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	}
}
