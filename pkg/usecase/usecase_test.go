package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/stigbase/saver/pkg/domain/interfaces"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/model/checklist"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/infra"
	"github.com/stigbase/saver/pkg/infra/bus"
	"github.com/stigbase/saver/pkg/repository"
	"github.com/stigbase/saver/pkg/repository/memory"
	"github.com/stigbase/saver/pkg/usecase"
	"github.com/stigbase/saver/pkg/utils/compress"
	"github.com/stigbase/saver/pkg/utils/logging"
)

const sampleChecklist = `<CHECKLIST><ASSET><ROLE>None</ROLE><ASSET_TYPE>Computing</ASSET_TYPE><HOST_NAME>web01</HOST_NAME><HOST_IP>10.0.0.5</HOST_IP><HOST_MAC></HOST_MAC><HOST_FQDN>web01.example.com</HOST_FQDN><TECH_AREA></TECH_AREA><TARGET_KEY>2350</TARGET_KEY><WEB_OR_DATABASE>false</WEB_OR_DATABASE><WEB_DB_SITE></WEB_DB_SITE><WEB_DB_INSTANCE></WEB_DB_INSTANCE></ASSET><STIGS><iSTIG><VULN><STATUS>NotAFinding</STATUS></VULN></iSTIG></STIGS></CHECKLIST>`

var testCaller = model.CallerIdentity{
	ID:       "user-1",
	FullName: "Test User",
	Username: "tuser",
	Email:    "tuser@example.com",
}

func setup(t *testing.T) (context.Context, *usecase.UseCase, *bus.Memory) {
	t.Helper()

	recorder := bus.NewMemory()
	clients := infra.New(infra.WithPublisher(recorder))

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })

	return ctx, usecase.New(clients), recorder
}

func createSystem(t *testing.T, ctx context.Context, uc *usecase.UseCase, title string) *model.SystemGroup {
	t.Helper()
	return gt.R1(uc.CreateSystemGroup(ctx, &model.CreateSystemGroupInput{
		Title:  title,
		Caller: testCaller,
	})).NoError(t)
}

func createArtifact(t *testing.T, ctx context.Context, uc *usecase.UseCase, systemID types.SystemGroupID, title, raw string) *model.Artifact {
	t.Helper()
	return gt.R1(uc.CreateArtifact(ctx, &model.CreateArtifactInput{
		SystemGroupID: systemID,
		Title:         title,
		RawChecklist:  raw,
		Caller:        testCaller,
	})).NoError(t)
}

func decodeAudit(t *testing.T, ev bus.Event) model.AuditRecord {
	t.Helper()

	raw := gt.R1(compress.Gunzip(ev.Data)).NoError(t)
	var record model.AuditRecord
	gt.NoError(t, json.Unmarshal(raw, &record))
	return record
}

func TestCreateSystemGroup(t *testing.T) {
	t.Run("empty title is rejected", func(t *testing.T) {
		ctx, uc, recorder := setup(t)

		_, err := uc.CreateSystemGroup(ctx, &model.CreateSystemGroupInput{
			Title:  "   ",
			Caller: testCaller,
		})
		gt.True(t, errors.Is(err, repository.ErrInvalidInput))
		gt.A(t, recorder.Events()).Length(0)
	})

	t.Run("wrong scan file suffix is rejected", func(t *testing.T) {
		ctx, uc, recorder := setup(t)

		_, err := uc.CreateSystemGroup(ctx, &model.CreateSystemGroupInput{
			Title:          "Site A",
			NessusFilename: "scan.xml",
			RawNessusFile:  "<NessusClientData_v2/>",
			Caller:         testCaller,
		})
		gt.True(t, errors.Is(err, repository.ErrInvalidInput))
		gt.A(t, recorder.Events()).Length(0)
	})

	t.Run("creates group and emits audit record", func(t *testing.T) {
		ctx, uc, recorder := setup(t)

		created := gt.R1(uc.CreateSystemGroup(ctx, &model.CreateSystemGroupInput{
			Title:          "Site A",
			Description:    "primary site",
			NessusFilename: "scan.NESSUS",
			RawNessusFile:  "<a>\n<b>1</b>\n</a>",
			Caller:         testCaller,
		})).NoError(t)

		gt.V(t, created.ID).NotEqual("")
		gt.V(t, created.Title).Equal("Site A")
		gt.V(t, created.RawNessusFile).Equal("<a><b>1</b></a>")
		gt.V(t, created.Created).Equal(logging.CtxTime(ctx))
		gt.V(t, created.CreatedBy).Equal(testCaller.ID)

		audits := recorder.EventsBySubject(types.SubjectAuditSave)
		gt.A(t, audits).Length(1)
		record := decodeAudit(t, audits[0])
		gt.V(t, record.Program).Equal("saver-api")
		gt.V(t, record.Action).Equal("create")
		gt.V(t, record.Username).Equal("tuser")
		gt.V(t, record.Created).Equal(logging.CtxTime(ctx))
	})
}

func TestUpdateSystemGroup(t *testing.T) {
	t.Run("unknown id is not found", func(t *testing.T) {
		ctx, uc, _ := setup(t)

		_, err := uc.UpdateSystemGroup(ctx, &model.UpdateSystemGroupInput{
			ID:     "no-such-system",
			Title:  "New Title",
			Caller: testCaller,
		})
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("same trimmed title emits no rename event", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")

		updated := gt.R1(uc.UpdateSystemGroup(ctx, &model.UpdateSystemGroupInput{
			ID:          group.ID,
			Title:       "  Site A  ",
			Description: "new description",
			Caller:      testCaller,
		})).NoError(t)

		gt.V(t, updated.Title).Equal("Site A")
		gt.V(t, updated.Description).Equal("new description")
		gt.A(t, recorder.EventsBySubject(types.SubjectSystemUpdate(group.ID))).Length(0)
	})

	t.Run("changed title emits exactly one rename event", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")

		updated := gt.R1(uc.UpdateSystemGroup(ctx, &model.UpdateSystemGroupInput{
			ID:     group.ID,
			Title:  "Site B",
			Caller: testCaller,
		})).NoError(t)

		gt.V(t, updated.Title).Equal("Site B")
		renames := recorder.EventsBySubject(types.SubjectSystemUpdate(group.ID))
		gt.A(t, renames).Length(1)
		gt.V(t, string(renames[0].Data)).Equal("Site B")
	})

	t.Run("keeps existing scan file when none supplied", func(t *testing.T) {
		ctx, uc, _ := setup(t)
		group := gt.R1(uc.CreateSystemGroup(ctx, &model.CreateSystemGroupInput{
			Title:          "Site A",
			NessusFilename: "scan.nessus",
			RawNessusFile:  "<a/>",
			Caller:         testCaller,
		})).NoError(t)

		updated := gt.R1(uc.UpdateSystemGroup(ctx, &model.UpdateSystemGroupInput{
			ID:     group.ID,
			Title:  "Site A",
			Caller: testCaller,
		})).NoError(t)

		gt.V(t, updated.NessusFilename).Equal("scan.nessus")
		gt.V(t, updated.RawNessusFile).Equal("<a/>")
	})
}

func TestDeleteSystemGroup(t *testing.T) {
	t.Run("unknown id is not found with no events", func(t *testing.T) {
		ctx, uc, recorder := setup(t)

		err := uc.DeleteSystemGroup(ctx, "no-such-system", testCaller)
		gt.True(t, errors.Is(err, repository.ErrNotFound))
		gt.A(t, recorder.Events()).Length(0)
	})

	t.Run("cascade removes artifacts and emits per-child events", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		artifact := createArtifact(t, ctx, uc, group.ID, "Host1", "<A><B>1</B></A>")

		gt.V(t, artifact.RawChecklist).Equal("<A><B>1</B></A>")

		gt.NoError(t, uc.DeleteSystemGroup(ctx, group.ID, testCaller))

		_, err := uc.UpdateSystemGroup(ctx, &model.UpdateSystemGroupInput{ID: group.ID, Caller: testCaller})
		gt.True(t, errors.Is(err, repository.ErrNotFound))
		err = uc.DeleteArtifact(ctx, artifact.ID, testCaller)
		gt.True(t, errors.Is(err, repository.ErrNotFound))

		deletes := recorder.EventsBySubject(types.SubjectChecklistDelete)
		gt.A(t, deletes).Length(1)
		gt.V(t, string(deletes[0].Data)).Equal(string(artifact.ID))

		counts := recorder.EventsBySubject(types.SubjectSystemCountDelete)
		gt.A(t, counts).Length(1)
		gt.V(t, string(counts[0].Data)).Equal(string(group.ID))
	})

	t.Run("cascade over N artifacts emits N delete and N count events", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		for _, title := range []string{"Host1", "Host2", "Host3"} {
			createArtifact(t, ctx, uc, group.ID, title, "<A/>")
		}

		gt.NoError(t, uc.DeleteSystemGroup(ctx, group.ID, testCaller))

		gt.A(t, recorder.EventsBySubject(types.SubjectChecklistDelete)).Length(3)
		gt.A(t, recorder.EventsBySubject(types.SubjectSystemCountDelete)).Length(3)

		remaining := gt.R1(uc.FindArtifacts(ctx, "", time.Time{})).NoError(t)
		gt.A(t, remaining).Length(0)
	})
}

// flakyArtifactRepository fails Delete for one configured id and delegates
// everything else, to drive the best-effort branch of the cascade.
type flakyArtifactRepository struct {
	interfaces.ArtifactRepository
	failDeleteID types.ArtifactID
}

func (x *flakyArtifactRepository) Delete(ctx context.Context, id types.ArtifactID) error {
	if id == x.failDeleteID {
		return goerr.New("storage unavailable", goerr.V("artifactID", id))
	}
	return x.ArtifactRepository.Delete(ctx, id)
}

func TestDeleteSystemGroupPartialFailure(t *testing.T) {
	recorder := bus.NewMemory()
	flaky := &flakyArtifactRepository{ArtifactRepository: memory.NewArtifactRepository()}
	clients := infra.New(
		infra.WithArtifactRepository(flaky),
		infra.WithPublisher(recorder),
	)
	uc := usecase.New(clients)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })

	group := createSystem(t, ctx, uc, "Site A")
	stuck := createArtifact(t, ctx, uc, group.ID, "Host1", "<A/>")
	removed := createArtifact(t, ctx, uc, group.ID, "Host2", "<A/>")
	flaky.failDeleteID = stuck.ID

	gt.NoError(t, uc.DeleteSystemGroup(ctx, group.ID, testCaller))

	// the parent stays deleted even though one child delete failed
	err := uc.DeleteSystemGroup(ctx, group.ID, testCaller)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	// only the successfully deleted sibling gets its event pair
	deletes := recorder.EventsBySubject(types.SubjectChecklistDelete)
	gt.A(t, deletes).Length(1)
	gt.V(t, string(deletes[0].Data)).Equal(string(removed.ID))
	gt.A(t, recorder.EventsBySubject(types.SubjectSystemCountDelete)).Length(1)

	// the failed child is still in the store
	remaining := gt.R1(uc.FindArtifacts(ctx, "", time.Time{})).NoError(t)
	gt.A(t, remaining).Length(1)
	gt.V(t, remaining[0].ID).Equal(stuck.ID)
}

func TestDeleteSystemChecklists(t *testing.T) {
	t.Run("unknown system is not found", func(t *testing.T) {
		ctx, uc, _ := setup(t)

		err := uc.DeleteSystemChecklists(ctx, "no-such-system", nil, testCaller)
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("explicit ids delete only the named artifacts", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		a1 := createArtifact(t, ctx, uc, group.ID, "Host1", "<A/>")
		a2 := createArtifact(t, ctx, uc, group.ID, "Host2", "<A/>")
		a3 := createArtifact(t, ctx, uc, group.ID, "Host3", "<A/>")

		gt.NoError(t, uc.DeleteSystemChecklists(ctx, group.ID, []types.ArtifactID{a1.ID, a2.ID}, testCaller))

		gt.A(t, recorder.EventsBySubject(types.SubjectChecklistDelete)).Length(2)
		gt.A(t, recorder.EventsBySubject(types.SubjectSystemCountDelete)).Length(2)

		remaining := gt.R1(uc.FindArtifacts(ctx, "", time.Time{})).NoError(t)
		gt.A(t, remaining).Length(1)
		gt.V(t, remaining[0].ID).Equal(a3.ID)
	})

	t.Run("no ids deletes every artifact under the system", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		other := createSystem(t, ctx, uc, "Site B")
		createArtifact(t, ctx, uc, group.ID, "Host1", "<A/>")
		createArtifact(t, ctx, uc, group.ID, "Host2", "<A/>")
		kept := createArtifact(t, ctx, uc, other.ID, "Host3", "<A/>")

		gt.NoError(t, uc.DeleteSystemChecklists(ctx, group.ID, nil, testCaller))

		gt.A(t, recorder.EventsBySubject(types.SubjectChecklistDelete)).Length(2)

		remaining := gt.R1(uc.FindArtifacts(ctx, "", time.Time{})).NoError(t)
		gt.A(t, remaining).Length(1)
		gt.V(t, remaining[0].ID).Equal(kept.ID)
	})

	t.Run("artifact of another system is skipped", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		other := createSystem(t, ctx, uc, "Site B")
		foreign := createArtifact(t, ctx, uc, other.ID, "Host1", "<A/>")

		gt.NoError(t, uc.DeleteSystemChecklists(ctx, group.ID, []types.ArtifactID{foreign.ID}, testCaller))

		gt.A(t, recorder.EventsBySubject(types.SubjectChecklistDelete)).Length(0)
		remaining := gt.R1(uc.FindArtifacts(ctx, "", time.Time{})).NoError(t)
		gt.A(t, remaining).Length(1)
	})
}

func TestCreateArtifact(t *testing.T) {
	t.Run("empty title is rejected", func(t *testing.T) {
		ctx, uc, recorder := setup(t)

		_, err := uc.CreateArtifact(ctx, &model.CreateArtifactInput{
			Title:  "",
			Caller: testCaller,
		})
		gt.True(t, errors.Is(err, repository.ErrInvalidInput))
		gt.A(t, recorder.Events()).Length(0)
	})

	t.Run("normalizes uploaded checklist and emits new event", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")

		created := gt.R1(uc.CreateArtifact(ctx, &model.CreateArtifactInput{
			SystemGroupID: group.ID,
			Title:         "Host1",
			RawChecklist:  "<A>\n\t<B>1</B>\n</A>",
			Caller:        testCaller,
		})).NoError(t)

		gt.V(t, created.RawChecklist).Equal("<A><B>1</B></A>")
		gt.V(t, created.Created).Equal(logging.CtxTime(ctx))

		news := recorder.EventsBySubject(types.SubjectSaveNew)
		gt.A(t, news).Length(1)
		gt.V(t, string(news[0].Data)).Equal(string(created.ID))
	})
}

func TestUpdateArtifactAsset(t *testing.T) {
	t.Run("wrong system is not found", func(t *testing.T) {
		ctx, uc, _ := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		other := createSystem(t, ctx, uc, "Site B")
		artifact := createArtifact(t, ctx, uc, group.ID, "Host1", sampleChecklist)

		_, err := uc.UpdateArtifactAsset(ctx, &model.UpdateArtifactAssetInput{
			SystemGroupID: other.ID,
			ArtifactID:    artifact.ID,
			Caller:        testCaller,
		})
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("sets asset fields and mirrors hostname", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		artifact := createArtifact(t, ctx, uc, group.ID, "Host1", sampleChecklist)

		updated := gt.R1(uc.UpdateArtifactAsset(ctx, &model.UpdateArtifactAssetInput{
			SystemGroupID: group.ID,
			ArtifactID:    artifact.ID,
			HostName:      "db02",
			DomainName:    "db02.example.com",
			TechArea:      "Databases",
			AssetType:     "Computing",
			Role:          "Member Server",
			Caller:        testCaller,
		})).NoError(t)

		gt.V(t, updated.HostName).Equal("db02")

		doc := gt.R1(checklist.Parse(updated.RawChecklist)).NoError(t)
		gt.V(t, doc.Asset.HostName).Equal("db02")
		gt.V(t, doc.Asset.HostFQDN).Equal("db02.example.com")
		gt.V(t, doc.Asset.TechArea).Equal("Databases")
		gt.V(t, doc.Asset.Role).Equal("Member Server")
		gt.V(t, doc.Stigs.Raw).Equal("<iSTIG><VULN><STATUS>NotAFinding</STATUS></VULN></iSTIG>")

		updates := recorder.EventsBySubject(types.SubjectSaveUpdate)
		gt.A(t, updates).Length(1)
		gt.V(t, string(updates[0].Data)).Equal(string(artifact.ID))
	})

	t.Run("empty field clears the stored value", func(t *testing.T) {
		ctx, uc, _ := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		artifact := createArtifact(t, ctx, uc, group.ID, "Host1", sampleChecklist)

		updated := gt.R1(uc.UpdateArtifactAsset(ctx, &model.UpdateArtifactAssetInput{
			SystemGroupID: group.ID,
			ArtifactID:    artifact.ID,
			HostName:      "",
			DomainName:    "db02.example.com",
			Caller:        testCaller,
		})).NoError(t)

		gt.V(t, updated.HostName).Equal("")
		doc := gt.R1(checklist.Parse(updated.RawChecklist)).NoError(t)
		gt.V(t, doc.Asset.HostName).Equal("")
		gt.V(t, doc.Asset.AssetType).Equal("")
	})
}

func TestDeleteArtifact(t *testing.T) {
	t.Run("unknown id is not found with no events", func(t *testing.T) {
		ctx, uc, recorder := setup(t)

		err := uc.DeleteArtifact(ctx, "no-such-artifact", testCaller)
		gt.True(t, errors.Is(err, repository.ErrNotFound))
		gt.A(t, recorder.Events()).Length(0)
	})

	t.Run("emits delete and count events", func(t *testing.T) {
		ctx, uc, recorder := setup(t)
		group := createSystem(t, ctx, uc, "Site A")
		artifact := createArtifact(t, ctx, uc, group.ID, "Host1", "<A/>")

		gt.NoError(t, uc.DeleteArtifact(ctx, artifact.ID, testCaller))

		deletes := recorder.EventsBySubject(types.SubjectChecklistDelete)
		gt.A(t, deletes).Length(1)
		gt.V(t, string(deletes[0].Data)).Equal(string(artifact.ID))

		counts := recorder.EventsBySubject(types.SubjectSystemCountDelete)
		gt.A(t, counts).Length(1)
		gt.V(t, string(counts[0].Data)).Equal(string(group.ID))
	})
}

func TestFindArtifacts(t *testing.T) {
	ctx, uc, _ := setup(t)
	group := createSystem(t, ctx, uc, "Site A")
	createArtifact(t, ctx, uc, group.ID, "web server", "<A/>")
	createArtifact(t, ctx, uc, group.ID, "db server", "<A/>")

	found := gt.R1(uc.FindArtifacts(ctx, "web", time.Time{})).NoError(t)
	gt.A(t, found).Length(1)
	gt.V(t, found[0].Title).Equal("web server")

	all := gt.R1(uc.FindArtifacts(ctx, "", time.Time{})).NoError(t)
	gt.A(t, all).Length(2)

	none := gt.R1(uc.FindArtifacts(ctx, "", time.Now().Add(time.Hour))).NoError(t)
	gt.A(t, none).Length(0)
}
