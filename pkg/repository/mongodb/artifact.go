package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type artifactRepository struct {
	collection *mongo.Collection
}

type artifactDoc struct {
	InternalID    primitive.ObjectID `bson:"_id,omitempty"`
	SystemGroupID string             `bson:"systemGroupId"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	HostName      string             `bson:"hostName"`
	RawChecklist  string             `bson:"rawChecklist"`
	Created       time.Time          `bson:"created"`
	UpdatedOn     time.Time          `bson:"updatedOn"`
	CreatedBy     string             `bson:"createdBy"`
	UpdatedBy     string             `bson:"updatedBy"`
}

func toArtifactDoc(artifact *model.Artifact) *artifactDoc {
	return &artifactDoc{
		SystemGroupID: string(artifact.SystemGroupID),
		Title:         artifact.Title,
		Description:   artifact.Description,
		HostName:      artifact.HostName,
		RawChecklist:  artifact.RawChecklist,
		Created:       artifact.Created,
		UpdatedOn:     artifact.UpdatedOn,
		CreatedBy:     string(artifact.CreatedBy),
		UpdatedBy:     string(artifact.UpdatedBy),
	}
}

func (x *artifactDoc) toModel() *model.Artifact {
	return &model.Artifact{
		ID:            types.ArtifactID(x.InternalID.Hex()),
		SystemGroupID: types.SystemGroupID(x.SystemGroupID),
		Title:         x.Title,
		Description:   x.Description,
		HostName:      x.HostName,
		RawChecklist:  x.RawChecklist,
		Created:       x.Created,
		UpdatedOn:     x.UpdatedOn,
		CreatedBy:     types.UserID(x.CreatedBy),
		UpdatedBy:     types.UserID(x.UpdatedBy),
	}
}

func (r *artifactRepository) findOne(ctx context.Context, filter bson.M, id types.ArtifactID) (*model.Artifact, error) {
	var doc artifactDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, goerr.Wrap(repository.ErrNotFound, "artifact not found",
				goerr.V("artifactID", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get artifact",
			goerr.V("artifactID", id),
		)
	}

	return doc.toModel(), nil
}

func (r *artifactRepository) Get(ctx context.Context, id types.ArtifactID) (*model.Artifact, error) {
	return r.findOne(ctx, bson.M{"_id": ToInternalID(string(id))}, id)
}

func (r *artifactRepository) GetBySystem(ctx context.Context, systemGroupID types.SystemGroupID, id types.ArtifactID) (*model.Artifact, error) {
	return r.findOne(ctx, bson.M{
		"_id":           ToInternalID(string(id)),
		"systemGroupId": string(systemGroupID),
	}, id)
}

func (r *artifactRepository) findAll(ctx context.Context, filter bson.M) ([]*model.Artifact, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query artifacts")
	}
	defer cursor.Close(ctx)

	var artifacts []*model.Artifact
	for cursor.Next(ctx) {
		var doc artifactDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode artifact")
		}
		artifacts = append(artifacts, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate artifacts")
	}

	return artifacts, nil
}

func (r *artifactRepository) List(ctx context.Context) ([]*model.Artifact, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *artifactRepository) ListBySystem(ctx context.Context, systemGroupID types.SystemGroupID) ([]*model.Artifact, error) {
	return r.findAll(ctx, bson.M{"systemGroupId": string(systemGroupID)})
}

func (r *artifactRepository) Find(ctx context.Context, titleContains string, updatedSince time.Time) ([]*model.Artifact, error) {
	return r.findAll(ctx, bson.M{
		"title":     primitive.Regex{Pattern: regexp.QuoteMeta(titleContains)},
		"updatedOn": bson.M{"$gte": updatedSince},
	})
}

func (r *artifactRepository) Add(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	doc := toArtifactDoc(artifact)
	doc.InternalID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to insert artifact",
			goerr.V("title", artifact.Title),
		)
	}

	return doc.toModel(), nil
}

func (r *artifactRepository) Replace(ctx context.Context, id types.ArtifactID, artifact *model.Artifact) error {
	internalID := ToInternalID(string(id))

	// Existence is checked first so a missing document reports not-found
	// rather than a write failure.
	if err := r.collection.FindOne(ctx, bson.M{"_id": internalID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return goerr.Wrap(repository.ErrNotFound, "artifact not found",
				goerr.V("artifactID", id),
			)
		}
		return goerr.Wrap(err, "failed to look up artifact",
			goerr.V("artifactID", id),
		)
	}

	doc := toArtifactDoc(artifact)
	doc.InternalID = internalID

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": internalID}, doc)
	if err != nil {
		return goerr.Wrap(err, "failed to replace artifact",
			goerr.V("artifactID", id),
		)
	}
	if result.MatchedCount == 0 {
		return goerr.New("artifact replace did not take effect",
			goerr.V("artifactID", id),
		)
	}

	return nil
}

func (r *artifactRepository) Delete(ctx context.Context, id types.ArtifactID) error {
	internalID := ToInternalID(string(id))

	if err := r.collection.FindOne(ctx, bson.M{"_id": internalID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return goerr.Wrap(repository.ErrNotFound, "artifact not found",
				goerr.V("artifactID", id),
			)
		}
		return goerr.Wrap(err, "failed to look up artifact",
			goerr.V("artifactID", id),
		)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": internalID})
	if err != nil {
		return goerr.Wrap(err, "failed to delete artifact",
			goerr.V("artifactID", id),
		)
	}
	if result.DeletedCount == 0 {
		return goerr.New("artifact delete did not take effect",
			goerr.V("artifactID", id),
		)
	}

	return nil
}
